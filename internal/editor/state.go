package editor

import (
	"errors"
	"fmt"

	"github.com/seldinet/tui.editor/internal/model"
)

var (
	ErrInvalidPosition = errors.New("editor: position out of range")
	ErrNilDocument     = errors.New("editor: nil document")
)

// Selection is a text range in document positions. From <= To; an empty
// selection is a cursor.
type Selection struct {
	From int
	To   int
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool { return s.From == s.To }

// State is an immutable editor snapshot. Commands produce new states
// through Dispatch.
type State struct {
	Doc       *model.Node
	Selection Selection
	// StoredMarks override the cursor marks for the next typed text; nil
	// means "use the marks at the cursor".
	StoredMarks []*model.Mark
}

// NewState places the cursor at the start of the first textblock.
func NewState(doc *model.Node) (*State, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	pos := firstTextPosition(doc)
	return &State{Doc: doc, Selection: Selection{From: pos, To: pos}}, nil
}

// Schema returns the schema of the document.
func (s *State) Schema() *model.Schema { return s.Doc.Type.Schema() }

// WithSelection returns a copy with a new selection. Stored marks are
// dropped, as they are whenever the selection moves.
func (s *State) WithSelection(from, to int) (*State, error) {
	if from > to {
		from, to = to, from
	}
	size := s.Doc.ContentSize()
	if from < 0 || to > size {
		return nil, fmt.Errorf("%w: [%d, %d] outside [0, %d]", ErrInvalidPosition, from, to, size)
	}
	return &State{Doc: s.Doc, Selection: Selection{From: from, To: to}}, nil
}

// CursorMarks returns the stored marks, falling back to the marks of the
// text before the cursor (or after it at the start of a textblock).
func (s *State) CursorMarks() []*model.Mark {
	if s.StoredMarks != nil {
		return s.StoredMarks
	}
	return marksAt(s.Doc, s.Selection.From)
}

func firstTextPosition(doc *model.Node) int {
	found := -1
	doc.Descendants(func(n *model.Node, pos int, _ *model.Node) bool {
		if found >= 0 {
			return false
		}
		if n.Type.IsTextblock() {
			found = pos + 1
			return false
		}
		return true
	})
	if found < 0 {
		return 0
	}
	return found
}

// resolvedPos locates a position: the innermost node whose content holds
// it, and the offset inside that content.
type resolvedPos struct {
	parent *model.Node
	offset int
}

func resolve(doc *model.Node, pos int) resolvedPos {
	node, offset := doc, pos
	for {
		childStart := 0
		descended := false
		for _, child := range node.Content {
			end := childStart + child.NodeSize()
			if offset > childStart && offset < end && !child.IsText() && !child.Type.IsLeaf() {
				node = child
				offset -= childStart + 1
				descended = true
				break
			}
			if end > offset {
				break
			}
			childStart = end
		}
		if !descended {
			return resolvedPos{parent: node, offset: offset}
		}
	}
}

func marksAt(doc *model.Node, pos int) []*model.Mark {
	rp := resolve(doc, pos)
	var before, after *model.Node
	childStart := 0
	for _, child := range rp.parent.Content {
		end := childStart + child.NodeSize()
		if rp.offset > childStart && rp.offset < end {
			return child.Marks
		}
		if end == rp.offset {
			before = child
		}
		if childStart == rp.offset && after == nil {
			after = child
		}
		childStart = end
	}
	if before != nil {
		return before.Marks
	}
	if after != nil {
		return after.Marks
	}
	return nil
}
