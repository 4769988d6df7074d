package model

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Node is an immutable document node. Text nodes carry Text and Marks;
// other nodes carry Content.
type Node struct {
	Type    *NodeType
	Attrs   Attrs
	Content []*Node
	Marks   []*Mark
	Text    string
}

// Mark is a formatting annotation on inline content.
type Mark struct {
	Type  *MarkType
	Attrs Attrs
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Type.IsText() }

// NodeSize is the number of positions the node occupies: the rune count for
// text, one for leaves, content size plus two for other nodes.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Text)
	}
	if n.Type.IsLeaf() {
		return 1
	}
	return n.ContentSize() + 2
}

// ContentSize sums the sizes of the children.
func (n *Node) ContentSize() int {
	size := 0
	for _, child := range n.Content {
		size += child.NodeSize()
	}
	return size
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.Content) }

// Child returns the child at index i.
func (n *Node) Child(i int) *Node { return n.Content[i] }

// TextContent concatenates the text of all descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	n.Descendants(func(child *Node, _ int, _ *Node) bool {
		if child.IsText() {
			b.WriteString(child.Text)
		}
		return true
	})
	return b.String()
}

// Descendants calls fn for every descendant with its absolute position
// inside n. Returning false skips the children of that node.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node) bool) {
	n.NodesBetween(0, n.ContentSize(), fn)
}

// NodesBetween calls fn for every descendant overlapping [from, to).
func (n *Node) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node) bool) {
	n.nodesBetween(from, to, fn, 0)
}

func (n *Node) nodesBetween(from, to int, fn func(*Node, int, *Node) bool, nodeStart int) {
	pos := 0
	for _, child := range n.Content {
		if pos >= to {
			break
		}
		end := pos + child.NodeSize()
		if end > from || (from == to && end == from && child.NodeSize() == 0) {
			if fn(child, nodeStart+pos, n) && len(child.Content) > 0 {
				start := pos + 1
				child.nodesBetween(max(0, from-start), min(child.ContentSize(), to-start), fn, nodeStart+start)
			}
		}
		pos = end
	}
}

// WithContent returns a copy of n holding the given children.
func (n *Node) WithContent(content []*Node) *Node {
	return &Node{Type: n.Type, Attrs: n.Attrs, Content: content, Marks: n.Marks}
}

// WithText returns a copy of a text node holding text.
func (n *Node) WithText(text string) *Node {
	return &Node{Type: n.Type, Attrs: n.Attrs, Text: text, Marks: n.Marks}
}

// WithMarks returns a copy of n carrying marks.
func (n *Node) WithMarks(marks []*Mark) *Node {
	return &Node{Type: n.Type, Attrs: n.Attrs, Content: n.Content, Marks: marks, Text: n.Text}
}

// Eq compares two nodes structurally.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.Type != other.Type || n.Text != other.Text || !attrsEqual(n.Attrs, other.Attrs) {
		return false
	}
	if !SameMarkSet(n.Marks, other.Marks) || len(n.Content) != len(other.Content) {
		return false
	}
	for i := range n.Content {
		if !n.Content[i].Eq(other.Content[i]) {
			return false
		}
	}
	return true
}

// String renders a compact debug form, e.g. heading(level=2 "Hi").
func (n *Node) String() string {
	var b strings.Builder
	n.writeString(&b)
	return b.String()
}

func (n *Node) writeString(b *strings.Builder) {
	if n.IsText() {
		for i := len(n.Marks) - 1; i >= 0; i-- {
			b.WriteString(n.Marks[i].String())
			b.WriteByte('(')
		}
		b.WriteString(strconv.Quote(n.Text))
		for range n.Marks {
			b.WriteByte(')')
		}
		return
	}
	b.WriteString(n.Type.Name)
	attrs := formatAttrs(n.Attrs)
	if attrs == "" && len(n.Content) == 0 {
		return
	}
	b.WriteByte('(')
	b.WriteString(attrs)
	for i, child := range n.Content {
		if i > 0 || attrs != "" {
			b.WriteString(", ")
		}
		child.writeString(b)
	}
	b.WriteByte(')')
}

func formatAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v == nil || v == false {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case string:
			parts = append(parts, k+"="+strconv.Quote(v))
		default:
			parts = append(parts, k+"="+fmt.Sprint(v))
		}
	}
	return strings.Join(parts, " ")
}

// String renders the mark name.
func (m *Mark) String() string { return m.Type.Name }

// Eq reports whether both marks share a type and attributes.
func (m *Mark) Eq(other *Mark) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.Type == other.Type && attrsEqual(m.Attrs, other.Attrs)
}

// AddToSet returns set with m added. A mark of the same type is replaced;
// the result stays ordered by mark rank.
func (m *Mark) AddToSet(set []*Mark) []*Mark {
	out := make([]*Mark, 0, len(set)+1)
	placed := false
	for _, other := range set {
		if m.Eq(other) {
			return set
		}
		if other.Type == m.Type {
			continue
		}
		if !placed && other.Type.rank > m.Type.rank {
			out = append(out, m)
			placed = true
		}
		out = append(out, other)
	}
	if !placed {
		out = append(out, m)
	}
	return out
}

// RemoveFromSet returns set without m.
func (m *Mark) RemoveFromSet(set []*Mark) []*Mark {
	for i, other := range set {
		if m.Eq(other) {
			out := make([]*Mark, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...)
		}
	}
	return set
}

// IsInSet reports whether an equal mark is part of set.
func (m *Mark) IsInSet(set []*Mark) bool {
	for _, other := range set {
		if m.Eq(other) {
			return true
		}
	}
	return false
}

// SameMarkSet compares two mark sets.
func SameMarkSet(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b Attrs) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
