package di

import (
	"fmt"
	"strings"

	"github.com/seldinet/tui.editor/internal/commands"
	"github.com/seldinet/tui.editor/internal/commands/editorcmd"
	"github.com/seldinet/tui.editor/internal/convert"
	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/logging/gologger"
	"github.com/seldinet/tui.editor/internal/markdown"
	"github.com/seldinet/tui.editor/internal/marks"
	"github.com/seldinet/tui.editor/internal/runtimeconfig"
	"github.com/seldinet/tui.editor/internal/wysiwyg"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// Container wires the editor services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	marks          []marks.Component
	parser         markdown.Parser
	convertOpts    []convert.Option
	registry       editorcmd.CommandRegistry

	assembly    *wysiwyg.Assembly
	markdownSvc *markdown.Service
	convertor   *convert.Convertor
	sessions    *editorcmd.Sessions
	handlers    *editorcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithMarks replaces the default mark components.
func WithMarks(components ...marks.Component) Option {
	return func(c *Container) {
		c.marks = append([]marks.Component(nil), components...)
	}
}

// WithParser replaces the goldmark parser.
func WithParser(parser markdown.Parser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithConvertorOptions forwards options to the convertor.
func WithConvertorOptions(opts ...convert.Option) Option {
	return func(c *Container) {
		c.convertOpts = append(c.convertOpts, opts...)
	}
}

// WithCommandRegistry registers the editor command handlers with reg.
func WithCommandRegistry(reg editorcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	assembly, err := wysiwyg.New(wysiwyg.Options{
		Platform: resolvePlatform(cfg.Editor.Platform),
		Marks:    c.marks,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble schema: %w", err)
	}
	c.assembly = assembly

	c.markdownSvc = markdown.NewService(markdown.Config{
		FrontMatter: cfg.Markdown.FrontMatter,
		Parser:      cfg.Markdown.Parser.ParseOptions(),
	}, c.parser, logging.MarkdownLogger(c.loggerProvider))

	convertOpts := append([]convert.Option{convert.WithLogger(logging.ConvertLogger(c.loggerProvider))}, c.convertOpts...)
	convertor, err := convert.New(assembly.Schema, convertOpts...)
	if err != nil {
		return nil, fmt.Errorf("build convertor: %w", err)
	}
	c.convertor = convertor

	c.sessions = editorcmd.NewSessions()
	timeout := cfg.Editor.CommandTimeout
	handlers, err := editorcmd.RegisterEditorCommands(c.registry, c.sessions, assembly, c.loggerProvider,
		editorcmd.WithRunHandlerOptions(commands.WithTimeout[editorcmd.RunCommand](timeout)),
		editorcmd.WithKeyHandlerOptions(commands.WithTimeout[editorcmd.KeyPress](timeout)),
		editorcmd.WithSelectHandlerOptions(commands.WithTimeout[editorcmd.SetSelection](timeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("register editor commands: %w", err)
	}
	c.handlers = handlers

	logging.ModuleLogger(c.loggerProvider, "editor").Debug("container.configured",
		"marks", len(assembly.Schema.Marks()),
		"commands", assembly.CommandNames(),
	)
	return c, nil
}

func newLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, nil
	}
}

func resolvePlatform(name string) editor.Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac":
		return editor.PlatformMac
	case "other":
		return editor.PlatformOther
	default:
		return editor.CurrentPlatform()
	}
}

// LoggerProvider returns the configured provider. It may be nil, in which
// case module loggers fall back to no-op.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Assembly returns the schema assembly.
func (c *Container) Assembly() *wysiwyg.Assembly { return c.assembly }

// MarkdownService returns the markdown service.
func (c *Container) MarkdownService() *markdown.Service { return c.markdownSvc }

// Convertor returns the markdown to document convertor.
func (c *Container) Convertor() *convert.Convertor { return c.convertor }

// Sessions returns the open editor sessions.
func (c *Container) Sessions() *editorcmd.Sessions { return c.sessions }

// CommandHandlers returns the editor command handlers.
func (c *Container) CommandHandlers() *editorcmd.HandlerSet { return c.handlers }
