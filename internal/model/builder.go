package model

type frame struct {
	typ     *NodeType
	attrs   Attrs
	content []*Node
}

// Builder assembles a document from open/close events. The top node is
// always open; nodes opened on top of it are closed in LIFO order.
type Builder struct {
	schema *Schema
	stack  []*frame
	marks  []*Mark
}

// NewBuilder returns a builder whose only open frame is the top node.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{
		schema: schema,
		stack:  []*frame{{typ: schema.TopNodeType()}},
	}
}

// Schema returns the schema nodes are built against.
func (b *Builder) Schema() *Schema { return b.schema }

// Depth is the number of frames opened above the top node.
func (b *Builder) Depth() int { return len(b.stack) - 1 }

// ActiveMarks returns the marks applied to inline content added next.
func (b *Builder) ActiveMarks() []*Mark { return append([]*Mark(nil), b.marks...) }

func (b *Builder) top() *frame { return b.stack[len(b.stack)-1] }

// OpenNode pushes a frame for a node of type t.
func (b *Builder) OpenNode(t *NodeType, attrs Attrs) {
	if t == nil {
		panic("model: open of nil node type")
	}
	b.stack = append(b.stack, &frame{typ: t, attrs: attrs})
}

// CloseNode pops the innermost frame, appends the finished node to its
// parent and returns it. Active marks do not survive the close. Closing the
// top node is a no-op returning nil.
func (b *Builder) CloseNode() *Node {
	if len(b.stack) <= 1 {
		return nil
	}
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.marks = nil

	node := f.typ.Create(f.attrs, f.content, nil)
	parent := b.top()
	parent.content = append(parent.content, node)
	return node
}

// AddNode appends a content-less node to the innermost frame. Inline nodes
// pick up the active marks.
func (b *Builder) AddNode(t *NodeType, attrs Attrs) *Node {
	if t == nil {
		panic("model: add of nil node type")
	}
	var marks []*Mark
	if t.IsInline() {
		marks = b.ActiveMarks()
	}
	node := t.Create(attrs, nil, marks)
	f := b.top()
	f.content = append(f.content, node)
	return node
}

// AddText appends text carrying the active marks, merging it into the
// preceding text node when both carry the same marks. Empty text is ignored.
func (b *Builder) AddText(text string) {
	if text == "" {
		return
	}
	f := b.top()
	if n := len(f.content); n > 0 {
		last := f.content[n-1]
		if last.IsText() && SameMarkSet(last.Marks, b.marks) {
			f.content[n-1] = last.WithText(last.Text + text)
			return
		}
	}
	f.content = append(f.content, b.schema.Text(text, b.ActiveMarks()))
}

// OpenMark activates m for subsequent inline content.
func (b *Builder) OpenMark(m *Mark) {
	if m == nil {
		return
	}
	b.marks = m.AddToSet(b.marks)
}

// CloseMark deactivates every mark of type t.
func (b *Builder) CloseMark(t *MarkType) {
	if t == nil {
		return
	}
	b.marks = t.RemoveFromSet(b.marks)
}

// Document closes every open frame and returns the top node.
func (b *Builder) Document() *Node {
	for b.Depth() > 0 {
		b.CloseNode()
	}
	root := b.stack[0]
	return root.typ.Create(root.attrs, root.content, nil)
}
