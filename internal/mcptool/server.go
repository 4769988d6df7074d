package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seldinet/tui.editor/internal/convert"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/markdown"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

const Version = "0.1.0"

const (
	formatJSON = "json"
	formatHTML = "html"
	formatDump = "dump"
)

// ConvertRequest is the argument of the conversion tools.
type ConvertRequest struct {
	Source    string `json:"source"`              // markdown or HTML input
	Format    string `json:"format,omitempty"`    // json (default), html or dump
	HardWraps bool   `json:"hardWraps,omitempty"` // treat soft breaks as hard breaks
}

// ConvertResponse carries the converted document in the requested format.
type ConvertResponse struct {
	Format      string                  `json:"format"`
	Document    json.RawMessage         `json:"document,omitempty"`
	HTML        string                  `json:"html,omitempty"`
	Dump        string                  `json:"dump,omitempty"`
	FrontMatter *interfaces.FrontMatter `json:"frontMatter,omitempty"`
}

// Tools converts sources for MCP clients.
type Tools struct {
	markdown  *markdown.Service
	convertor *convert.Convertor
	logger    interfaces.Logger
}

// NewTools binds the tools to the markdown service and the convertor.
func NewTools(svc *markdown.Service, convertor *convert.Convertor, logger interfaces.Logger) (*Tools, error) {
	if svc == nil {
		return nil, errors.New("mcptool: markdown service is nil")
	}
	if convertor == nil {
		return nil, errors.New("mcptool: convertor is nil")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Tools{markdown: svc, convertor: convertor, logger: logger}, nil
}

// NewServer creates an MCP server exposing markdown_to_document,
// html_to_document and document_schema.
func NewServer(tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		"WYSIWYG Document Convertor",
		Version,
		server.WithToolCapabilities(false),
	)

	formatOption := mcp.WithString("format",
		mcp.Description("Output format: json (document JSON), html (rendered through toDOM) or dump (debug tree)"),
		mcp.Enum(formatJSON, formatHTML, formatDump),
	)
	hardWrapsOption := mcp.WithBoolean("hardWraps",
		mcp.Description("Turn every soft line break into a hard break"),
	)

	markdownTool := mcp.NewTool("markdown_to_document",
		mcp.WithDescription("Convert markdown into a WYSIWYG editor document"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("The markdown source, optionally with YAML front matter"),
		),
		formatOption,
		hardWrapsOption,
	)
	s.AddTool(markdownTool, mcp.NewTypedToolHandler(tools.markdownHandler))

	htmlTool := mcp.NewTool("html_to_document",
		mcp.WithDescription("Convert pasted HTML into a WYSIWYG editor document"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("The HTML fragment"),
		),
		formatOption,
		hardWrapsOption,
	)
	s.AddTool(htmlTool, mcp.NewTypedToolHandler(tools.htmlHandler))

	schemaTool := mcp.NewTool("document_schema",
		mcp.WithDescription("Return the JSON Schema documents produced by the convertor conform to"),
	)
	s.AddTool(schemaTool, tools.schemaHandler)

	return s
}

func (t *Tools) markdownHandler(ctx context.Context, _ mcp.CallToolRequest, args ConvertRequest) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Source) == "" {
		return mcp.NewToolResultError("source is required"), nil
	}
	src, err := t.markdown.Parse(ctx, []byte(args.Source), interfaces.ParseOptions{HardWraps: args.HardWraps})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse markdown: %v", err)), nil
	}
	return t.respond(ctx, "markdown", args, src)
}

func (t *Tools) htmlHandler(ctx context.Context, _ mcp.CallToolRequest, args ConvertRequest) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Source) == "" {
		return mcp.NewToolResultError("source is required"), nil
	}
	src, err := t.markdown.ParseHTML(ctx, args.Source, interfaces.ParseOptions{HardWraps: args.HardWraps})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read html: %v", err)), nil
	}
	return t.respond(ctx, "html", args, src)
}

func (t *Tools) respond(ctx context.Context, kind string, args ConvertRequest, src *markdown.Source) (*mcp.CallToolResult, error) {
	format := strings.ToLower(strings.TrimSpace(args.Format))
	if format == "" {
		format = formatJSON
	}

	doc, err := t.convertor.Convert(ctx, src.Tree)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to convert %s: %v", kind, err)), nil
	}

	response := ConvertResponse{Format: format}
	if len(src.FrontMatter.Raw) > 0 {
		fm := src.FrontMatter
		response.FrontMatter = &fm
	}
	switch format {
	case formatJSON:
		data, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal document: %v", err)), nil
		}
		response.Document = data
	case formatHTML:
		out, err := t.convertor.Schema().RenderHTML(doc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render document: %v", err)), nil
		}
		response.HTML = out
	case formatDump:
		response.Dump = doc.String()
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", args.Format)), nil
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	logging.FromContext(ctx, t.logger).Debug("mcp tool converted",
		"source", kind,
		"format", format,
		"source_bytes", len(args.Source),
	)
	return mcp.NewToolResultText(string(responseBytes)), nil
}

func (t *Tools) schemaHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(t.convertor.Schema().JSONSchema())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal schema: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
