package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// ErrNilFilesystem is returned by LoadFile without a filesystem.
var ErrNilFilesystem = errors.New("markdown service: filesystem is nil")

// Config controls front matter handling and default parse options.
type Config struct {
	FrontMatter bool
	Parser      interfaces.ParseOptions
}

// Source is a parsed markdown input ready for conversion.
type Source struct {
	Path        string
	FrontMatter interfaces.FrontMatter
	Body        []byte
	Tree        *mdast.Tree
	// Checksum is the SHA-256 of the original input.
	Checksum []byte
}

// Service strips front matter and parses markdown into source trees.
type Service struct {
	cfg    Config
	parser Parser
	logger interfaces.Logger
}

// NewService constructs a Markdown service. When parser is nil, a goldmark
// parser with the configured default options is created.
func NewService(cfg Config, parser Parser, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser, logger)
	}
	return &Service{
		cfg:    cfg,
		parser: parser,
		logger: logger,
	}
}

// Parse builds a Source from markdown bytes.
func (s *Service) Parse(ctx context.Context, source []byte, opts interfaces.ParseOptions) (*Source, error) {
	sum := sha256.Sum256(source)
	result := &Source{Body: source, Checksum: sum[:]}

	if s.cfg.FrontMatter {
		fm, body, err := ParseFrontMatter(source)
		if err != nil {
			return nil, err
		}
		result.FrontMatter = fm
		result.Body = body
	}

	tree, err := s.parser.ParseWithOptions(ctx, result.Body, mergeParseOptions(s.cfg.Parser, opts))
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	return result, nil
}

// ParseHTML converts pasted HTML to markdown and parses it. Front matter is
// never looked for in HTML input.
func (s *Service) ParseHTML(ctx context.Context, source string, opts interfaces.ParseOptions) (*Source, error) {
	md, err := HTMLToMarkdown(source)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.logger).Debug("html converted to markdown",
		"html_bytes", len(source),
		"markdown_bytes", len(md),
	)

	body := []byte(md)
	sum := sha256.Sum256([]byte(source))
	tree, err := s.parser.ParseWithOptions(ctx, body, mergeParseOptions(s.cfg.Parser, opts))
	if err != nil {
		return nil, err
	}
	return &Source{Body: body, Tree: tree, Checksum: sum[:]}, nil
}

// LoadFile reads and parses a single Markdown document from filesystem.
func (s *Service) LoadFile(ctx context.Context, filesystem fs.FS, path string, opts interfaces.ParseOptions) (*Source, error) {
	if filesystem == nil {
		return nil, ErrNilFilesystem
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := normalisePath(path)
	data, err := fs.ReadFile(filesystem, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown service read %s: %w", rel, err)
	}

	result, err := s.Parse(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown service parse %s: %w", rel, err)
	}
	result.Path = rel
	return result, nil
}

func normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(path))
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.CustomBlocks {
		result.CustomBlocks = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}
