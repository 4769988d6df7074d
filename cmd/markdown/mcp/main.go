package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/seldinet/tui.editor/cmd/markdown/internal/bootstrap"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/mcptool"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	s, httpAddr, err := setup(os.Args[1:])
	if err != nil {
		log.Fatalf("markdown mcp: %v", err)
	}

	if httpAddr != "" {
		log.Printf("Starting MCP server on HTTP address: %s", httpAddr)
		httpServer := server.NewStreamableHTTPServer(s)
		if err := httpServer.Start(httpAddr); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}
	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}

func setup(args []string) (*server.MCPServer, string, error) {
	fs := flag.NewFlagSet("markdown-mcp", flag.ContinueOnError)
	httpAddr := fs.String("http", "", "HTTP server address (e.g., ':8080'); stdio when empty")
	hardWraps := fs.Bool("hard-wraps", false, "Turn soft line breaks into hard breaks by default")
	safeMode := fs.Bool("safe-mode", false, "Drop raw HTML from markdown input")
	extensions := fs.String("extensions", "", "Comma separated goldmark extensions (default gfm)")
	verbose := fs.Bool("verbose", false, "Enable go-logger output")
	logLevel := fs.String("log-level", "info", "Log level when verbose")
	logFormat := fs.String("log-format", "json", "Log format when verbose: json, console or pretty")

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Extensions:   bootstrap.SplitList(*extensions),
		HardWraps:    *hardWraps,
		SafeMode:     *safeMode,
		CustomBlocks: true,
		FrontMatter:  true,
		Verbose:      *verbose,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
	})
	if err != nil {
		return nil, "", fmt.Errorf("bootstrap module: %w", err)
	}

	container := module.Module.Container()
	tools, err := mcptool.NewTools(
		container.MarkdownService(),
		container.Convertor(),
		logging.MCPLogger(container.LoggerProvider()),
	)
	if err != nil {
		return nil, "", err
	}
	return mcptool.NewServer(tools), *httpAddr, nil
}
