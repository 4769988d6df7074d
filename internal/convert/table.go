package convert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/internal/model"
)

var (
	ErrMissingHandler = errors.New("convert: missing handler")
	ErrMissingType    = errors.New("convert: schema lacks a required type")
	ErrUnknownTagType = errors.New("convert: tag table targets an unknown type")
	ErrNilTree        = errors.New("convert: nil source tree")
	ErrNilSchema      = errors.New("convert: nil schema")
	ErrNilState       = errors.New("convert: nil builder state")
)

// State is the document builder driven by the handlers. *model.Builder
// satisfies it.
type State interface {
	Schema() *model.Schema
	OpenNode(t *model.NodeType, attrs model.Attrs)
	CloseNode() *model.Node
	AddNode(t *model.NodeType, attrs model.Attrs) *model.Node
	AddText(text string)
	OpenMark(m *model.Mark)
	CloseMark(t *model.MarkType)
	Depth() int
}

var _ State = (*model.Builder)(nil)

// Context is passed to a handler with every traversal event. SkipChildren
// is nil unless the event enters a container.
type Context struct {
	Entering     bool
	SkipChildren func()
}

// Handler converts one source node event into builder operations.
type Handler func(state State, node mdast.Ref, ctx Context)

// Table maps every source kind to its handler.
type Table map[mdast.Kind]Handler

// Validate checks that every convertible kind has a handler.
func (t Table) Validate() error {
	var missing []string
	for _, kind := range mdast.Convertible() {
		if t[kind] == nil {
			missing = append(missing, kind.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingHandler, strings.Join(missing, ", "))
	}
	return nil
}

// Clone returns a copy that can be modified independently.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// requirements lists the schema types the default handler of each kind
// resolves by name.
var requirements = map[mdast.Kind]struct{ nodes, marks []string }{
	mdast.KindParagraph:     {nodes: []string{"paragraph"}},
	mdast.KindHeading:       {nodes: []string{"heading"}},
	mdast.KindCodeBlock:     {nodes: []string{"codeBlock"}},
	mdast.KindList:          {nodes: []string{"bulletList", "orderedList"}},
	mdast.KindItem:          {nodes: []string{"listItem"}},
	mdast.KindBlockQuote:    {nodes: []string{"blockQuote"}},
	mdast.KindImage:         {nodes: []string{"image"}},
	mdast.KindThematicBreak: {nodes: []string{"thematicBreak"}},
	mdast.KindStrong:        {marks: []string{"strong"}},
	mdast.KindEmph:          {marks: []string{"emph"}},
	mdast.KindLink:          {marks: []string{"link"}},
	mdast.KindLinebreak:     {nodes: []string{"hardBreak"}},
	mdast.KindHTMLInline:    {nodes: []string{"hardBreak"}},
	mdast.KindHTMLBlock:     {nodes: []string{"paragraph", "hardBreak"}},
	mdast.KindTable:         {nodes: []string{"table"}},
	mdast.KindTableHead:     {nodes: []string{"tableHead"}},
	mdast.KindTableBody:     {nodes: []string{"tableBody"}},
	mdast.KindTableRow:      {nodes: []string{"tableRow"}},
	mdast.KindTableCell:     {nodes: []string{"tableHeadCell", "tableBodyCell", "paragraph"}},
	mdast.KindStrike:        {marks: []string{"strike"}},
	mdast.KindCode:          {marks: []string{"code"}},
	mdast.KindCustomBlock:   {nodes: []string{"customBlock", "paragraph"}},
}

func checkRequirements(schema *model.Schema, kinds map[mdast.Kind]bool) error {
	var missing []string
	for kind, req := range requirements {
		if !kinds[kind] {
			continue
		}
		for _, name := range req.nodes {
			if schema.Node(name) == nil {
				missing = append(missing, "node "+name)
			}
		}
		for _, name := range req.marks {
			if schema.Mark(name) == nil {
				missing = append(missing, "mark "+name)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingType, strings.Join(dedupe(missing), ", "))
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
