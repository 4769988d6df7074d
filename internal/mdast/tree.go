package mdast

import "fmt"

// NodeID indexes a node inside its Tree.
type NodeID int32

// NoNode marks a missing parent, sibling or child link.
const NoNode NodeID = -1

// ListData carries the list attributes shared by list and item nodes.
type ListData struct {
	// Type is "bullet" or "ordered".
	Type    string
	Start   int
	Task    bool
	Checked bool
}

// Node is the payload of a source AST node. Only the fields relevant to Kind
// are populated; link fields are maintained by Tree.
type Node struct {
	Kind        Kind
	Literal     string
	Level       int
	Info        string
	ListData    *ListData
	Destination string
	Title       string

	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	prev       NodeID
	next       NodeID
}

// Tree stores a markdown AST as an arena of nodes. Parent and sibling links
// are indices resolved at construction, so context lookups are O(1) and the
// structure carries no pointer cycles.
type Tree struct {
	nodes []Node
}

// NewTree returns a tree holding only the document root.
func NewTree() *Tree {
	t := &Tree{nodes: make([]Node, 0, 32)}
	t.nodes = append(t.nodes, Node{
		Kind:       KindDocument,
		parent:     NoNode,
		firstChild: NoNode,
		lastChild:  NoNode,
		prev:       NoNode,
		next:       NoNode,
	})
	return t
}

// Root returns the document node id.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Append adds n as the last child of parent and returns its id.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	if !t.valid(parent) {
		panic(fmt.Sprintf("mdast: append to invalid parent %d", parent))
	}
	id := NodeID(len(t.nodes))
	n.parent = parent
	n.firstChild = NoNode
	n.lastChild = NoNode
	n.next = NoNode
	n.prev = t.nodes[parent].lastChild

	if n.prev != NoNode {
		t.nodes[n.prev].next = id
	} else {
		t.nodes[parent].firstChild = id
	}
	t.nodes[parent].lastChild = id
	t.nodes = append(t.nodes, n)
	return id
}

// AppendText is a shorthand for appending a text node.
func (t *Tree) AppendText(parent NodeID, literal string) NodeID {
	return t.Append(parent, Node{Kind: KindText, Literal: literal})
}

// Node returns the payload stored under id, or nil for invalid ids.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Ref returns a read-only cursor over id.
func (t *Tree) Ref(id NodeID) Ref {
	return Ref{tree: t, id: id}
}

func (t *Tree) valid(id NodeID) bool {
	return t != nil && id >= 0 && int(id) < len(t.nodes)
}

// Ref is a read-only cursor over a tree node. Navigation past the edge of the
// tree yields an invalid Ref whose Kind is KindNone.
type Ref struct {
	tree *Tree
	id   NodeID
}

// ID returns the node id, NoNode for invalid refs.
func (r Ref) ID() NodeID {
	if !r.Valid() {
		return NoNode
	}
	return r.id
}

// Valid reports whether the ref points at a node.
func (r Ref) Valid() bool { return r.tree.valid(r.id) }

// Tree returns the owning tree.
func (r Ref) Tree() *Tree { return r.tree }

func (r Ref) node() *Node { return r.tree.Node(r.id) }

func (r Ref) to(id NodeID) Ref { return Ref{tree: r.tree, id: id} }

// Kind returns the node kind or KindNone.
func (r Ref) Kind() Kind {
	if n := r.node(); n != nil {
		return n.Kind
	}
	return KindNone
}

// Parent returns the parent node.
func (r Ref) Parent() Ref {
	if n := r.node(); n != nil {
		return r.to(n.parent)
	}
	return r.to(NoNode)
}

// Next returns the following sibling.
func (r Ref) Next() Ref {
	if n := r.node(); n != nil {
		return r.to(n.next)
	}
	return r.to(NoNode)
}

// Prev returns the preceding sibling.
func (r Ref) Prev() Ref {
	if n := r.node(); n != nil {
		return r.to(n.prev)
	}
	return r.to(NoNode)
}

// FirstChild returns the first child.
func (r Ref) FirstChild() Ref {
	if n := r.node(); n != nil {
		return r.to(n.firstChild)
	}
	return r.to(NoNode)
}

// LastChild returns the last child.
func (r Ref) LastChild() Ref {
	if n := r.node(); n != nil {
		return r.to(n.lastChild)
	}
	return r.to(NoNode)
}

// Literal returns the raw text payload, "" when absent.
func (r Ref) Literal() string {
	if n := r.node(); n != nil {
		return n.Literal
	}
	return ""
}

// Level returns the heading level.
func (r Ref) Level() int {
	if n := r.node(); n != nil {
		return n.Level
	}
	return 0
}

// Info returns the info string of code and custom blocks.
func (r Ref) Info() string {
	if n := r.node(); n != nil {
		return n.Info
	}
	return ""
}

// Destination returns the link or image destination.
func (r Ref) Destination() string {
	if n := r.node(); n != nil {
		return n.Destination
	}
	return ""
}

// Title returns the link or image title.
func (r Ref) Title() string {
	if n := r.node(); n != nil {
		return n.Title
	}
	return ""
}

// ListData returns the list attributes; a zero value is returned for nodes
// without list data so callers never deal with nil.
func (r Ref) ListData() ListData {
	if n := r.node(); n != nil && n.ListData != nil {
		return *n.ListData
	}
	return ListData{}
}

// String renders a short description for logs.
func (r Ref) String() string {
	if !r.Valid() {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", r.Kind(), r.id)
}
