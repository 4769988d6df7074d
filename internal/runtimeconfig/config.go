package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/seldinet/tui.editor/internal/markdown"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

var ErrLoggingProviderRequired = errors.New("editor config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("editor config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("editor config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("editor config: logging format is invalid")

// ErrMarkdownExtensionUnknown reports a parser extension name goldmark does not provide.
var ErrMarkdownExtensionUnknown = errors.New("editor config: markdown extension is unknown")

// ErrEditorPlatformInvalid reports a keymap platform other than auto, mac or other.
var ErrEditorPlatformInvalid = errors.New("editor config: editor platform is invalid")

// ErrCommandTimeoutInvalid rejects negative command timeouts.
var ErrCommandTimeoutInvalid = errors.New("editor config: command timeout must be zero or positive")

// Config is the runtime configuration of the editor module.
type Config struct {
	Features Features
	Logging  LoggingConfig
	Markdown MarkdownConfig
	Editor   EditorConfig
}

// Features toggles optional behaviour.
type Features struct {
	// Logger wires the configured logging provider; otherwise logging is a no-op.
	Logger bool
	// HTMLPaste enables HTML input (converted to markdown first).
	HTMLPaste bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MarkdownConfig captures how markdown sources are read.
type MarkdownConfig struct {
	// FrontMatter strips and parses a leading YAML block.
	FrontMatter bool
	Parser      MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions   []string
	HardWraps    bool
	CustomBlocks bool
	SafeMode     bool
}

// ParseOptions converts the parser config into parser options.
func (c MarkdownParserConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions:   slices.Clone(c.Extensions),
		HardWraps:    c.HardWraps,
		CustomBlocks: c.CustomBlocks,
		SafeMode:     c.SafeMode,
	}
}

// EditorConfig tunes editor sessions and the command layer.
type EditorConfig struct {
	// Platform picks what Mod means in key bindings: "auto" (default), "mac" or "other".
	Platform string
	// CommandTimeout bounds each editor command. Zero disables the bound.
	CommandTimeout time.Duration
}

// DefaultConfig returns the defaults used by the CLI and the MCP server.
func DefaultConfig() Config {
	return Config{
		Features: Features{
			HTMLPaste: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Markdown: MarkdownConfig{
			FrontMatter: true,
			Parser: MarkdownParserConfig{
				Extensions:   []string{"gfm"},
				CustomBlocks: true,
			},
		},
		Editor: EditorConfig{
			Platform:       "auto",
			CommandTimeout: 5 * time.Second,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	known := markdown.ExtensionNames()
	for _, name := range cfg.Markdown.Parser.Extensions {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := slices.BinarySearch(known, key); !ok {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Editor.Platform)) {
	case "", "auto", "mac", "other":
	default:
		return fmt.Errorf("%w: %s", ErrEditorPlatformInvalid, cfg.Editor.Platform)
	}
	if cfg.Editor.CommandTimeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
