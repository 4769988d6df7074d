package markdown

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// Parser turns markdown source into the AST consumed by the convertor.
type Parser interface {
	Parse(ctx context.Context, source []byte) (*mdast.Tree, error)
	ParseWithOptions(ctx context.Context, source []byte, opts interfaces.ParseOptions) (*mdast.Tree, error)
}

// GoldmarkParser implements Parser using the goldmark engine. The parser is
// stateless so callers can reuse a single instance across requests without
// additional locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	logger         interfaces.Logger
}

var _ Parser = (*GoldmarkParser)(nil)

// NewGoldmarkParser constructs a parser with the given defaults. A nil logger
// disables logging.
func NewGoldmarkParser(defaults interfaces.ParseOptions, logger interfaces.Logger) *GoldmarkParser {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &GoldmarkParser{
		defaultOptions: defaults,
		logger:         logger,
	}
}

// Parse builds the AST using the parser's default configuration.
func (p *GoldmarkParser) Parse(ctx context.Context, source []byte) (*mdast.Tree, error) {
	return p.ParseWithOptions(ctx, source, p.defaultOptions)
}

// ParseWithOptions builds the AST using the provided options.
func (p *GoldmarkParser) ParseWithOptions(ctx context.Context, source []byte, opts interfaces.ParseOptions) (*mdast.Tree, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("markdown parse: %w", ctx.Err())
	default:
	}

	engine := newGoldmarkEngine(opts)
	doc := engine.Parser().Parse(text.NewReader(source))
	tree := adapt(doc, source, opts.HardWraps, opts.SafeMode)

	logging.FromContext(ctx, p.logger).Debug("markdown parsed",
		"source_bytes", len(source),
		"nodes", tree.Len(),
	)
	return tree, nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured based on the
// supplied parse options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	if opts.CustomBlocks {
		exts = append(exts, CustomBlocks)
	}

	var engineOptions []goldmark.Option
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// ExtensionNames lists the accepted extension names.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		// aliases resolve to the same extender
		if _, ok := seen[ext]; ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[ext] = struct{}{}
	}

	return extenders
}
