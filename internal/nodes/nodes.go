// Package nodes declares the node types of the WYSIWYG document schema.
package nodes

import (
	"strconv"

	"github.com/seldinet/tui.editor/internal/model"
)

var htmlString = model.AttributeSpec{Default: nil}

func withHTML(attrs map[string]model.AttributeSpec) map[string]model.AttributeSpec {
	out := map[string]model.AttributeSpec{"htmlString": htmlString}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func tag(name string) func(*model.Node) model.DOMOutputSpec {
	return func(*model.Node) model.DOMOutputSpec { return model.DOMOutputSpec{Tag: name} }
}

func rules(tags ...string) []model.ParseRule {
	out := make([]model.ParseRule, 0, len(tags))
	for _, t := range tags {
		out = append(out, model.ParseRule{Tag: t})
	}
	return out
}

// Specs returns the node specs in schema order. The first entry is the
// top node.
func Specs() []model.NodeSpec {
	specs := []model.NodeSpec{
		{Name: "doc", Content: "block+"},
		{
			Name: "paragraph", Content: "inline*", Group: "block",
			Attrs:    withHTML(nil),
			ParseDOM: rules("p"),
			ToDOM:    tag("p"),
		},
		{Name: "text", Group: "inline"},
		heading(),
		codeBlock(),
		{
			Name: "bulletList", Content: "listItem+", Group: "block",
			Attrs:    withHTML(nil),
			ParseDOM: rules("ul"),
			ToDOM:    tag("ul"),
		},
		orderedList(),
		listItem(),
		{
			Name: "blockQuote", Content: "block+", Group: "block",
			Attrs:    withHTML(nil),
			ParseDOM: rules("blockquote"),
			ToDOM:    tag("blockquote"),
		},
		image(),
		{
			Name: "thematicBreak", Group: "block",
			Attrs:    withHTML(nil),
			ParseDOM: rules("hr"),
			ToDOM:    tag("hr"),
		},
		{
			Name: "hardBreak", Group: "inline", Inline: true,
			Attrs: map[string]model.AttributeSpec{
				"htmlString": {Default: false},
				"inCell":     {Default: false},
			},
			ParseDOM: rules("br"),
			ToDOM:    tag("br"),
		},
		customBlock(),
	}
	return append(specs, tableSpecs()...)
}

func heading() model.NodeSpec {
	var parse []model.ParseRule
	for level := 1; level <= 6; level++ {
		parse = append(parse, model.ParseRule{
			Tag: "h" + strconv.Itoa(level),
			GetAttrs: func(string) model.Attrs {
				return model.Attrs{"level": level}
			},
		})
	}
	return model.NodeSpec{
		Name: "heading", Content: "inline*", Group: "block",
		Attrs:    withHTML(map[string]model.AttributeSpec{"level": {Default: 1}}),
		ParseDOM: parse,
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			level := n.Attrs.Int("level", 1)
			if level < 1 || level > 6 {
				level = 1
			}
			return model.DOMOutputSpec{Tag: "h" + strconv.Itoa(level)}
		},
	}
}

func codeBlock() model.NodeSpec {
	return model.NodeSpec{
		Name: "codeBlock", Content: "text*", Group: "block", Code: true,
		Attrs:    withHTML(map[string]model.AttributeSpec{"language": {Default: nil}}),
		ParseDOM: rules("pre"),
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			inner := &model.DOMOutputSpec{Tag: "code"}
			if lang := n.Attrs.String("language"); lang != "" {
				inner.Attrs = map[string]string{"data-language": lang}
				return model.DOMOutputSpec{
					Tag:   "pre",
					Attrs: map[string]string{"class": "lang-" + lang},
					Inner: inner,
				}
			}
			return model.DOMOutputSpec{Tag: "pre", Inner: inner}
		},
	}
}

func orderedList() model.NodeSpec {
	return model.NodeSpec{
		Name: "orderedList", Content: "listItem+", Group: "block",
		Attrs:    withHTML(map[string]model.AttributeSpec{"order": {Default: 1}}),
		ParseDOM: rules("ol"),
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			if order := n.Attrs.Int("order", 1); order != 1 {
				return model.DOMOutputSpec{Tag: "ol", Attrs: map[string]string{"start": strconv.Itoa(order)}}
			}
			return model.DOMOutputSpec{Tag: "ol"}
		},
	}
}

func listItem() model.NodeSpec {
	return model.NodeSpec{
		Name: "listItem", Content: "block+",
		Attrs: withHTML(map[string]model.AttributeSpec{
			"task":    {Default: false},
			"checked": {Default: false},
		}),
		ParseDOM: rules("li"),
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			if !n.Attrs.Bool("task") {
				return model.DOMOutputSpec{Tag: "li"}
			}
			class := "task-list-item"
			if n.Attrs.Bool("checked") {
				class += " checked"
			}
			return model.DOMOutputSpec{Tag: "li", Attrs: map[string]string{"class": class, "data-task": "true"}}
		},
	}
}

func image() model.NodeSpec {
	return model.NodeSpec{
		Name: "image", Group: "inline", Inline: true, Atom: true,
		Attrs: withHTML(map[string]model.AttributeSpec{
			"imageUrl": {Required: true},
			"altText":  {Default: nil},
		}),
		ParseDOM: rules("img"),
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			attrs := map[string]string{"src": n.Attrs.String("imageUrl")}
			if alt := n.Attrs.String("altText"); alt != "" {
				attrs["alt"] = alt
			}
			return model.DOMOutputSpec{Tag: "img", Attrs: attrs}
		},
	}
}

func customBlock() model.NodeSpec {
	return model.NodeSpec{
		Name: "customBlock", Content: "text*", Group: "block", Code: true,
		Attrs: map[string]model.AttributeSpec{"info": {Required: true}},
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			return model.DOMOutputSpec{
				Tag:   "div",
				Attrs: map[string]string{"data-custom-info": n.Attrs.String("info")},
				Inner: &model.DOMOutputSpec{Tag: "pre"},
			}
		},
	}
}
