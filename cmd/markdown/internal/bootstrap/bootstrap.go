package bootstrap

import (
	"fmt"
	"strings"

	editor "github.com/seldinet/tui.editor"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// Options captures configuration for the markdown CLIs.
type Options struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	CustomBlocks   bool
	FrontMatter    bool
	LogLevel       string
	LogFormat      string
	Verbose        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the editor module and the CLI logger.
type Module struct {
	Module *editor.Module
	Logger interfaces.Logger
}

// BuildModule constructs an editor module configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := editor.DefaultConfig()
	if len(opts.Extensions) > 0 {
		cfg.Markdown.Parser.Extensions = cloneStrings(opts.Extensions)
	}
	cfg.Markdown.Parser.HardWraps = opts.HardWraps
	cfg.Markdown.Parser.SafeMode = opts.SafeMode
	cfg.Markdown.Parser.CustomBlocks = opts.CustomBlocks
	cfg.Markdown.FrontMatter = opts.FrontMatter

	if opts.Verbose {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Format = format
		}
	}

	moduleOpts := []editor.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, editor.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := editor.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise editor module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "editor.cli"),
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
