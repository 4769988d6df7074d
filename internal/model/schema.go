package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrInvalidSchema   = errors.New("model: invalid schema")
	ErrUnknownNodeType = errors.New("model: unknown node type")
	ErrUnknownMarkType = errors.New("model: unknown mark type")
)

// Attrs holds node or mark attributes.
type Attrs map[string]any

// Clone returns a shallow copy; nil stays nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// AttributeSpec declares an attribute and its default value.
type AttributeSpec struct {
	Default  any
	Required bool
}

// ParseRule matches a DOM element by tag name. GetAttrs, when set, derives
// attributes from the matched tag name (e.g. the level of an h3).
type ParseRule struct {
	Tag      string
	GetAttrs func(tag string) Attrs
}

// DOMOutputSpec describes how a node or mark is rendered: an element with
// attributes, optionally wrapping an inner element that receives the content.
type DOMOutputSpec struct {
	Tag   string
	Attrs map[string]string
	Inner *DOMOutputSpec
}

// NodeSpec declares a node type.
type NodeSpec struct {
	Name string
	// Content is an informational content expression ("block+", "inline*",
	// "text*"); an empty expression marks a leaf.
	Content  string
	Group    string
	Inline   bool
	Atom     bool
	Code     bool
	Attrs    map[string]AttributeSpec
	ParseDOM []ParseRule
	ToDOM    func(node *Node) DOMOutputSpec
}

// MarkSpec declares a mark type.
type MarkSpec struct {
	Name     string
	Attrs    map[string]AttributeSpec
	ParseDOM []ParseRule
	ToDOM    func(mark *Mark) DOMOutputSpec
}

// SchemaSpec groups the node and mark declarations of a schema. TopNode
// defaults to "doc".
type SchemaSpec struct {
	Nodes   []NodeSpec
	Marks   []MarkSpec
	TopNode string
}

// Schema is the registry of node and mark types. It is built once and shared
// read-only afterwards.
type Schema struct {
	nodes     map[string]*NodeType
	nodeOrder []*NodeType
	marks     map[string]*MarkType
	markOrder []*MarkType
	top       *NodeType
	text      *NodeType

	validatorOnce sync.Once
	validator     *jsonschema.Schema
	validatorErr  error
}

// NodeType is a registered node type.
type NodeType struct {
	Name   string
	Spec   NodeSpec
	schema *Schema
}

// MarkType is a registered mark type; rank orders marks inside a mark set.
type MarkType struct {
	Name   string
	Spec   MarkSpec
	rank   int
	schema *Schema
}

// NewSchema validates the declarations and builds the registry. A "text" node type
// and the top node type are required.
func NewSchema(spec SchemaSpec) (*Schema, error) {
	s := &Schema{
		nodes: make(map[string]*NodeType, len(spec.Nodes)),
		marks: make(map[string]*MarkType, len(spec.Marks)),
	}

	for _, ns := range spec.Nodes {
		name := strings.TrimSpace(ns.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: node spec without name", ErrInvalidSchema)
		}
		if _, exists := s.nodes[name]; exists {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidSchema, name)
		}
		nt := &NodeType{Name: name, Spec: ns, schema: s}
		s.nodes[name] = nt
		s.nodeOrder = append(s.nodeOrder, nt)
	}

	for i, ms := range spec.Marks {
		name := strings.TrimSpace(ms.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: mark spec without name", ErrInvalidSchema)
		}
		if _, exists := s.marks[name]; exists {
			return nil, fmt.Errorf("%w: duplicate mark %q", ErrInvalidSchema, name)
		}
		mt := &MarkType{Name: name, Spec: ms, rank: i, schema: s}
		s.marks[name] = mt
		s.markOrder = append(s.markOrder, mt)
	}

	topName := spec.TopNode
	if topName == "" {
		topName = "doc"
	}
	s.top = s.nodes[topName]
	if s.top == nil {
		return nil, fmt.Errorf("%w: missing top node %q", ErrInvalidSchema, topName)
	}
	s.text = s.nodes["text"]
	if s.text == nil {
		return nil, fmt.Errorf("%w: missing text node", ErrInvalidSchema)
	}
	return s, nil
}

// Node returns the node type registered under name, nil when missing.
func (s *Schema) Node(name string) *NodeType { return s.nodes[name] }

// Mark returns the mark type registered under name, nil when missing.
func (s *Schema) Mark(name string) *MarkType { return s.marks[name] }

// Nodes returns node types in declaration order.
func (s *Schema) Nodes() []*NodeType { return append([]*NodeType(nil), s.nodeOrder...) }

// Marks returns mark types in rank order.
func (s *Schema) Marks() []*MarkType { return append([]*MarkType(nil), s.markOrder...) }

// TopNodeType returns the document node type.
func (s *Schema) TopNodeType() *NodeType { return s.top }

// Text creates a text node carrying marks. Empty text yields nil.
func (s *Schema) Text(text string, marks []*Mark) *Node {
	if text == "" {
		return nil
	}
	return &Node{Type: s.text, Text: text, Marks: marks}
}

// MatchTag resolves a DOM tag name through the parse rules, nodes first.
func (s *Schema) MatchTag(tag string) (name string, mark bool, attrs Attrs, ok bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, nt := range s.nodeOrder {
		for _, rule := range nt.Spec.ParseDOM {
			if rule.Tag == tag {
				return nt.Name, false, rule.attrs(tag), true
			}
		}
	}
	for _, mt := range s.markOrder {
		for _, rule := range mt.Spec.ParseDOM {
			if rule.Tag == tag {
				return mt.Name, true, rule.attrs(tag), true
			}
		}
	}
	return "", false, nil, false
}

func (r ParseRule) attrs(tag string) Attrs {
	if r.GetAttrs == nil {
		return nil
	}
	return r.GetAttrs(tag)
}

// computeAttrs keeps declared attributes only and fills in defaults.
// Required attributes without a value are left nil; building never fails.
func computeAttrs(specs map[string]AttributeSpec, given Attrs) Attrs {
	if len(specs) == 0 {
		return nil
	}
	built := make(Attrs, len(specs))
	for name, spec := range specs {
		if value, ok := given[name]; ok {
			built[name] = value
			continue
		}
		built[name] = spec.Default
	}
	return built
}

// Create builds a node of this type.
func (t *NodeType) Create(attrs Attrs, content []*Node, marks []*Mark) *Node {
	return &Node{
		Type:    t,
		Attrs:   computeAttrs(t.Spec.Attrs, attrs),
		Content: content,
		Marks:   marks,
	}
}

// IsText reports whether this is the schema's text type.
func (t *NodeType) IsText() bool { return t == t.schema.text }

// IsInline reports whether nodes of this type sit in inline content.
func (t *NodeType) IsInline() bool { return t.Spec.Inline || t.IsText() }

// IsLeaf reports whether the type has no content.
func (t *NodeType) IsLeaf() bool { return t.Spec.Content == "" }

// IsTextblock reports whether the type is a block holding inline content.
func (t *NodeType) IsTextblock() bool {
	if t.IsInline() {
		return false
	}
	c := t.Spec.Content
	return strings.HasPrefix(c, "inline") || strings.HasPrefix(c, "text")
}

// AllowsMarks reports whether inline content of this type may carry marks.
func (t *NodeType) AllowsMarks() bool { return !t.Spec.Code }

// Schema returns the owning schema.
func (t *NodeType) Schema() *Schema { return t.schema }

// Create builds a mark of this type.
func (t *MarkType) Create(attrs Attrs) *Mark {
	return &Mark{Type: t, Attrs: computeAttrs(t.Spec.Attrs, attrs)}
}

// IsInSet returns the mark of this type in set, nil when absent.
func (t *MarkType) IsInSet(set []*Mark) *Mark {
	for _, m := range set {
		if m.Type == t {
			return m
		}
	}
	return nil
}

// RemoveFromSet drops every mark of this type from set.
func (t *MarkType) RemoveFromSet(set []*Mark) []*Mark {
	var out []*Mark
	for _, m := range set {
		if m.Type != t {
			out = append(out, m)
		}
	}
	return out
}

// Schema returns the owning schema.
func (t *MarkType) Schema() *Schema { return t.schema }
