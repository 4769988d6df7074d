package logging

import (
	"context"
	"strings"

	"github.com/seldinet/tui.editor/pkg/interfaces"
)

const (
	rootModule     = "editor"
	convertModule  = "editor.convert"
	markdownModule = "editor.markdown"
	commandsModule = "editor.commands"
	mcpModule      = "editor.mcp"
)

const (
	fieldDocumentID = "document_id"
	fieldSource     = "source"
	fieldSourceSize = "source_bytes"
)

// ModuleLogger returns a logger for module, tagged with a "module" field.
// A no-op logger is used when provider is nil or returns nil.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ConvertLogger is the logger of the markdown to document convertor.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// MarkdownLogger is the logger of the markdown parsing layer.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger is the logger of editor command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// MCPLogger is the logger of the MCP tool server.
func MCPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mcpModule)
}

// WithConversionContext adds the document id, the source kind ("markdown",
// "html") and its size. Empty values are skipped.
func WithConversionContext(logger interfaces.Logger, documentID, source string, size int) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(documentID); trimmed != "" {
		fields[fieldDocumentID] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSource] = trimmed
	}
	if size > 0 {
		fields[fieldSourceSize] = size
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
