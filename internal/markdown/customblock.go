package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindCustomBlock is the goldmark node kind of a $$ fenced custom block.
var KindCustomBlock = ast.NewNodeKind("CustomBlock")

// CustomBlock is a raw block fenced by "$$info" and "$$". Its lines are kept
// verbatim, including the final newline.
type CustomBlock struct {
	ast.BaseBlock
	Info string
}

// Kind implements ast.Node.
func (n *CustomBlock) Kind() ast.NodeKind { return KindCustomBlock }

// IsRaw implements ast.Node.
func (n *CustomBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *CustomBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Info": n.Info}, nil)
}

var customFence = []byte("$$")

type customBlockParser struct{}

func (customBlockParser) Trigger() []byte { return []byte{'$'} }

func (customBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], customFence) {
		return nil, parser.NoChildren
	}
	info := util.TrimRightSpace(util.TrimLeftSpace(line[pos+len(customFence):]))
	// a bare "$$" is left to other parsers
	if len(info) == 0 || bytes.Contains(info, customFence) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return &CustomBlock{Info: string(info)}, parser.NoChildren
}

func (customBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), customFence) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (customBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (customBlockParser) CanInterruptParagraph() bool { return true }

func (customBlockParser) CanAcceptIndentedLine() bool { return false }

type customBlocks struct{}

// CustomBlocks is the goldmark extension that recognises $$ custom blocks.
var CustomBlocks goldmark.Extender = customBlocks{}

func (customBlocks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(customBlockParser{}, 650),
	))
}
