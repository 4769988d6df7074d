package mdast

// Event is one step of a depth-first traversal. Containers are reported
// twice (Entering true, then false); leaves are reported once with
// Entering set to true.
type Event struct {
	Node     Ref
	Entering bool
}

// Walker traverses a subtree in document order.
type Walker struct {
	tree     *Tree
	root     NodeID
	current  NodeID
	entering bool
	last     Event
}

// NewWalker starts a traversal at root.
func NewWalker(tree *Tree, root NodeID) *Walker {
	w := &Walker{tree: tree, root: root, current: NoNode}
	if tree.valid(root) {
		w.current = root
		w.entering = true
	}
	return w
}

// Walk returns a walker over the whole tree.
func (t *Tree) Walk() *Walker {
	return NewWalker(t, t.Root())
}

// Next returns the next event, false once the traversal is done.
func (w *Walker) Next() (Event, bool) {
	cur := w.current
	if cur == NoNode {
		return Event{}, false
	}
	entering := w.entering
	node := w.tree.nodes[cur]

	switch {
	case entering && !node.Kind.IsLeaf():
		if node.firstChild != NoNode {
			w.current = node.firstChild
			w.entering = true
		} else {
			w.entering = false
		}
	case cur == w.root:
		w.current = NoNode
	case node.next == NoNode:
		w.current = node.parent
		w.entering = false
	default:
		w.current = node.next
		w.entering = true
	}

	w.last = Event{Node: w.tree.Ref(cur), Entering: entering}
	return w.last, true
}

// SkipChildren drops the children of the container just entered, together
// with its exit event. It is a no-op for leaves and exit events.
func (w *Walker) SkipChildren() {
	ev := w.last
	if !ev.Entering || !ev.Node.Valid() || ev.Node.Kind().IsLeaf() {
		return
	}
	w.current = ev.Node.id
	w.entering = false
	w.Next()
}
