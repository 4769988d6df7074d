package model

import (
	"bytes"
	"fmt"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes a document through the toDOM rules of its node and
// mark types. Nodes without a rule (the top node) render their content only.
func (s *Schema) RenderHTML(doc *Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range s.domNodes(doc) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("model: render %s: %w", doc.Type.Name, err)
		}
	}
	return buf.String(), nil
}

func (s *Schema) domNodes(n *Node) []*html.Node {
	if n.IsText() {
		return []*html.Node{wrapMarks(&html.Node{Type: html.TextNode, Data: n.Text}, n.Marks)}
	}
	toDOM := n.Type.Spec.ToDOM
	if toDOM == nil {
		var out []*html.Node
		for _, child := range n.Content {
			out = append(out, s.domNodes(child)...)
		}
		return out
	}
	outer, hole := buildElement(toDOM(n))
	if !n.Type.IsLeaf() {
		for _, child := range n.Content {
			for _, c := range s.domNodes(child) {
				hole.AppendChild(c)
			}
		}
	}
	if n.Type.IsInline() {
		return []*html.Node{wrapMarks(outer, n.Marks)}
	}
	return []*html.Node{outer}
}

// wrapMarks nests inner in the mark elements, first mark outermost.
func wrapMarks(inner *html.Node, marks []*Mark) *html.Node {
	node := inner
	for i := len(marks) - 1; i >= 0; i-- {
		m := marks[i]
		if m.Type.Spec.ToDOM == nil {
			continue
		}
		outer, hole := buildElement(m.Type.Spec.ToDOM(m))
		hole.AppendChild(node)
		node = outer
	}
	return node
}

// buildElement returns the outermost element and the element receiving
// content.
func buildElement(spec DOMOutputSpec) (outer, hole *html.Node) {
	outer = &html.Node{
		Type:     html.ElementNode,
		Data:     spec.Tag,
		DataAtom: atom.Lookup([]byte(spec.Tag)),
		Attr:     sortedAttrs(spec.Attrs),
	}
	hole = outer
	for inner := spec.Inner; inner != nil; inner = inner.Inner {
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     inner.Tag,
			DataAtom: atom.Lookup([]byte(inner.Tag)),
			Attr:     sortedAttrs(inner.Attrs),
		}
		hole.AppendChild(el)
		hole = el
	}
	return outer, hole
}

func sortedAttrs(attrs map[string]string) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, html.Attribute{Key: k, Val: attrs[k]})
	}
	return out
}
