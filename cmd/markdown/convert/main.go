package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	editor "github.com/seldinet/tui.editor"
	"github.com/seldinet/tui.editor/cmd/markdown/internal/bootstrap"
	"github.com/seldinet/tui.editor/internal/model"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("markdown convert: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("markdown-convert", flag.ContinueOnError)
	filePath := fs.String("file", "-", "Input file, - reads stdin")
	isHTML := fs.Bool("html", false, "Treat the input as pasted HTML")
	format := fs.String("format", "json", "Output format: json, html or dump")
	validate := fs.Bool("validate", false, "Validate the document JSON against the schema")
	hardWraps := fs.Bool("hard-wraps", false, "Turn soft line breaks into hard breaks")
	safeMode := fs.Bool("safe-mode", false, "Drop raw HTML from markdown input")
	customBlocks := fs.Bool("custom-blocks", true, "Recognise $$info custom blocks")
	frontMatter := fs.Bool("front-matter", true, "Strip and report YAML front matter")
	extensions := fs.String("extensions", "", "Comma separated goldmark extensions (default gfm)")
	verbose := fs.Bool("verbose", false, "Enable go-logger output on stderr")
	logLevel := fs.String("log-level", "debug", "Log level when verbose")
	logFormat := fs.String("log-format", "console", "Log format when verbose: json, console or pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *format {
	case "json", "html", "dump":
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}

	module, err := moduleBuilder(bootstrap.Options{
		Extensions:   bootstrap.SplitList(*extensions),
		HardWraps:    *hardWraps,
		SafeMode:     *safeMode,
		CustomBlocks: *customBlocks,
		FrontMatter:  *frontMatter,
		Verbose:      *verbose,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Module == nil {
		return errors.New("editor module not configured")
	}

	input, err := readInput(*filePath, stdin)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var doc *editor.Document
	if *isHTML {
		doc, err = module.Module.ConvertHTML(ctx, string(input))
	} else {
		doc, err = module.Module.ConvertMarkdown(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	module.Logger.Debug("document converted", "document_id", doc.ID.String(), "file", *filePath)

	if *validate {
		data, err := json.Marshal(doc.Root)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		if err := module.Module.Schema().ValidateJSON(data); err != nil {
			for _, issue := range model.Issues(err) {
				fmt.Fprintf(os.Stderr, "%s: %s\n", issue.Location, issue.Message)
			}
			return fmt.Errorf("document failed schema validation: %w", err)
		}
	}

	switch *format {
	case "html":
		out, err := module.Module.RenderHTML(doc.Root)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)
	case "dump":
		if doc.FrontMatter.Title != "" {
			fmt.Fprintf(stdout, "Title: %s\n", doc.FrontMatter.Title)
		}
		fmt.Fprintln(stdout, doc.Root.String())
	default:
		out := struct {
			ID          string              `json:"id"`
			FrontMatter *editor.FrontMatter `json:"frontMatter,omitempty"`
			Document    *editor.Node        `json:"document"`
		}{ID: doc.ID.String(), Document: doc.Root}
		if len(doc.FrontMatter.Raw) > 0 {
			out.FrontMatter = &doc.FrontMatter
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
