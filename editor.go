// Package editor converts markdown (and pasted HTML) into WYSIWYG editor
// documents and runs mark commands against them.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"

	"github.com/seldinet/tui.editor/internal/commands/editorcmd"
	"github.com/seldinet/tui.editor/internal/di"
	editstate "github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/identity"
	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/markdown"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// ErrHTMLPasteDisabled is returned by ConvertHTML when Features.HTMLPaste is off.
var ErrHTMLPasteDisabled = errors.New("editor: html paste is disabled")

type (
	// Schema is the WYSIWYG document schema.
	Schema = model.Schema
	// Node is a document node.
	Node = model.Node
	// Session is an editor session over one document.
	Session = editstate.Session
	// Keymap maps normalized keys to commands.
	Keymap = editstate.Keymap
	// FrontMatter is the metadata read from a markdown header.
	FrontMatter = interfaces.FrontMatter
	// CommandHandlers groups the go-command handlers of the editor commands.
	CommandHandlers = editorcmd.HandlerSet
)

// Option customises module wiring.
type Option = di.Option

// WithLoggerProvider routes module logs to provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithCommandRegistry registers the editor command handlers with reg.
func WithCommandRegistry(reg editorcmd.CommandRegistry) Option {
	return di.WithCommandRegistry(reg)
}

// Document is the result of a conversion.
type Document struct {
	ID          uuid.UUID
	Path        string
	FrontMatter FrontMatter
	Root        *Node
	// Checksum is the SHA-256 of the input.
	Checksum []byte
}

// Module is the top level editor runtime.
type Module struct {
	container *di.Container
	logger    interfaces.Logger
}

// New constructs the module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{
		container: container,
		logger:    logging.ModuleLogger(container.LoggerProvider(), "editor"),
	}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container { return m.container }

// Schema returns the document schema.
func (m *Module) Schema() *Schema { return m.container.Assembly().Schema }

// Keymap returns the default keymap shared by sessions.
func (m *Module) Keymap() *Keymap { return m.container.Assembly().Keymap }

// CommandNames lists the named editor commands.
func (m *Module) CommandNames() []string { return m.container.Assembly().CommandNames() }

// Commands returns the go-command handlers bound to the module sessions.
func (m *Module) Commands() *CommandHandlers { return m.container.CommandHandlers() }

// ConvertMarkdown parses source and converts it into a document.
func (m *Module) ConvertMarkdown(ctx context.Context, source []byte) (*Document, error) {
	id := uuid.New()
	ctx = conversionContext(ctx, id, "markdown")
	src, err := m.container.MarkdownService().Parse(ctx, source, interfaces.ParseOptions{})
	if err != nil {
		return nil, err
	}
	return m.convert(ctx, id, "markdown", len(source), src)
}

// ConvertHTML turns pasted HTML into markdown and converts the result.
func (m *Module) ConvertHTML(ctx context.Context, source string) (*Document, error) {
	if !m.container.Config.Features.HTMLPaste {
		return nil, ErrHTMLPasteDisabled
	}
	id := uuid.New()
	ctx = conversionContext(ctx, id, "html")
	src, err := m.container.MarkdownService().ParseHTML(ctx, source, interfaces.ParseOptions{})
	if err != nil {
		return nil, err
	}
	return m.convert(ctx, id, "html", len(source), src)
}

// ConvertFile reads path from fsys and converts it. The document id is
// derived from the cleaned path, so reloading a file keeps its id.
func (m *Module) ConvertFile(ctx context.Context, fsys fs.FS, path string) (*Document, error) {
	ctx = conversionContext(ctx, uuid.Nil, "file")
	src, err := m.container.MarkdownService().LoadFile(ctx, fsys, path, interfaces.ParseOptions{})
	if err != nil {
		return nil, err
	}
	return m.convert(ctx, identity.DocumentUUID(src.Path), "file", len(src.Body), src)
}

func (m *Module) convert(ctx context.Context, id uuid.UUID, kind string, size int, src *markdown.Source) (*Document, error) {
	root, err := m.container.Convertor().Convert(ctx, src.Tree)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", kind, err)
	}
	logging.WithConversionContext(m.logger, id.String(), kind, size).Debug("document converted",
		"path", src.Path,
		"top_level_nodes", root.ChildCount(),
	)
	return &Document{
		ID:          id,
		Path:        src.Path,
		FrontMatter: src.FrontMatter,
		Root:        root,
		Checksum:    src.Checksum,
	}, nil
}

func conversionContext(ctx context.Context, id uuid.UUID, source string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := map[string]any{"source": source}
	if id != uuid.Nil {
		fields["document_id"] = id.String()
	}
	return logging.ContextWithFields(ctx, fields)
}

// RenderHTML renders doc through the schema's toDOM rules.
func (m *Module) RenderHTML(doc *Node) (string, error) {
	return m.Schema().RenderHTML(doc)
}

// NewSession opens an editor session over doc and registers it so the
// command handlers can address it by the returned id.
func (m *Module) NewSession(doc *Node) (*Session, uuid.UUID, error) {
	session, err := m.container.Assembly().NewSession(doc)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return session, m.container.Sessions().Open(session), nil
}

// CloseSession forgets the session registered under id.
func (m *Module) CloseSession(id uuid.UUID) bool {
	return m.container.Sessions().Close(id)
}
