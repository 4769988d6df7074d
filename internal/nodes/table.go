package nodes

import "github.com/seldinet/tui.editor/internal/model"

func cell(name, tagName string) model.NodeSpec {
	return model.NodeSpec{
		Name: name, Content: "paragraph+",
		Attrs:    withHTML(map[string]model.AttributeSpec{"align": {Default: nil}}),
		ParseDOM: rules(tagName),
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			if align := n.Attrs.String("align"); align != "" {
				return model.DOMOutputSpec{Tag: tagName, Attrs: map[string]string{"align": align}}
			}
			return model.DOMOutputSpec{Tag: tagName}
		},
	}
}

func tableSpecs() []model.NodeSpec {
	return []model.NodeSpec{
		{
			Name: "table", Content: "tableHead{1} tableBody{1}", Group: "block",
			Attrs:    withHTML(nil),
			ParseDOM: rules("table"),
			ToDOM:    tag("table"),
		},
		{
			Name: "tableHead", Content: "tableRow{1}",
			Attrs:    withHTML(nil),
			ParseDOM: rules("thead"),
			ToDOM:    tag("thead"),
		},
		{
			Name: "tableBody", Content: "tableRow+",
			Attrs:    withHTML(nil),
			ParseDOM: rules("tbody"),
			ToDOM:    tag("tbody"),
		},
		{
			Name: "tableRow", Content: "(tableHeadCell | tableBodyCell)*",
			Attrs:    withHTML(nil),
			ParseDOM: rules("tr"),
			ToDOM:    tag("tr"),
		},
		cell("tableHeadCell", "th"),
		cell("tableBodyCell", "td"),
	}
}
