package convert

import (
	"strings"

	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/internal/tags"
)

// DefaultTable returns the handlers for every convertible kind.
func DefaultTable() Table {
	return Table{
		mdast.KindText:          text,
		mdast.KindParagraph:     container("paragraph", nil),
		mdast.KindHeading:       container("heading", headingAttrs),
		mdast.KindCodeBlock:     verbatim("codeBlock", codeBlockAttrs),
		mdast.KindList:          list,
		mdast.KindItem:          container("listItem", itemAttrs),
		mdast.KindBlockQuote:    container("blockQuote", nil),
		mdast.KindImage:         image,
		mdast.KindThematicBreak: leaf("thematicBreak"),
		mdast.KindStrong:        mark("strong"),
		mdast.KindEmph:          mark("emph"),
		mdast.KindLink:          link,
		mdast.KindSoftbreak:     softbreak,
		mdast.KindLinebreak:     leaf("hardBreak"),
		mdast.KindHTMLInline:    htmlInline,
		mdast.KindHTMLBlock:     htmlBlock,
		mdast.KindTable:         container("table", nil),
		mdast.KindTableHead:     container("tableHead", nil),
		mdast.KindTableBody:     container("tableBody", nil),
		mdast.KindTableRow:      container("tableRow", nil),
		mdast.KindTableCell:     tableCell,
		mdast.KindStrike:        mark("strike"),
		mdast.KindCode:          code,
		mdast.KindCustomBlock:   customBlock,
	}
}

// withoutTrailingNewline strips one final "\n", never more.
func withoutTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// attrSet collects attributes; optional ones are only recorded when present.
type attrSet model.Attrs

func (a attrSet) set(name string, value any) attrSet {
	a[name] = value
	return a
}

func (a attrSet) setIf(name string, value any, present bool) attrSet {
	if present {
		a[name] = value
	}
	return a
}

func (a attrSet) build() model.Attrs {
	if len(a) == 0 {
		return nil
	}
	return model.Attrs(a)
}

func text(state State, node mdast.Ref, _ Context) {
	state.AddText(node.Literal())
}

func container(name string, attrs func(mdast.Ref) model.Attrs) Handler {
	return func(state State, node mdast.Ref, ctx Context) {
		if !ctx.Entering {
			state.CloseNode()
			return
		}
		var a model.Attrs
		if attrs != nil {
			a = attrs(node)
		}
		state.OpenNode(state.Schema().Node(name), a)
	}
}

func headingAttrs(node mdast.Ref) model.Attrs {
	return attrSet{}.set("level", node.Level()).build()
}

func itemAttrs(node mdast.Ref) model.Attrs {
	data := node.ListData()
	return attrSet{}.
		setIf("task", data.Task, data.Task).
		setIf("checked", data.Checked, data.Checked).
		build()
}

func codeBlockAttrs(node mdast.Ref) model.Attrs {
	return attrSet{}.set("language", node.Info()).build()
}

func list(state State, node mdast.Ref, ctx Context) {
	if !ctx.Entering {
		state.CloseNode()
		return
	}
	schema := state.Schema()
	data := node.ListData()
	if data.Type == "bullet" {
		state.OpenNode(schema.Node("bulletList"), nil)
		return
	}
	state.OpenNode(schema.Node("orderedList"), attrSet{}.set("order", data.Start).build())
}

func verbatim(name string, attrs func(mdast.Ref) model.Attrs) Handler {
	return func(state State, node mdast.Ref, _ Context) {
		state.OpenNode(state.Schema().Node(name), attrs(node))
		state.AddText(withoutTrailingNewline(node.Literal()))
		state.CloseNode()
	}
}

func customBlock(state State, node mdast.Ref, _ Context) {
	schema := state.Schema()
	state.OpenNode(schema.Node("customBlock"), attrSet{}.set("info", node.Info()).build())
	state.AddText(withoutTrailingNewline(node.Literal()))
	state.CloseNode()
	// keep an editable line after a trailing custom block
	if !node.Next().Valid() {
		state.OpenNode(schema.Node("paragraph"), nil)
		state.CloseNode()
	}
}

func image(state State, node mdast.Ref, ctx Context) {
	if ctx.Entering && ctx.SkipChildren != nil {
		ctx.SkipChildren()
	}
	first := node.FirstChild()
	attrs := attrSet{}.
		set("imageUrl", node.Destination()).
		setIf("altText", first.Literal(), first.Valid()).
		build()
	state.AddNode(state.Schema().Node("image"), attrs)
}

func leaf(name string) Handler {
	return func(state State, _ mdast.Ref, _ Context) {
		state.AddNode(state.Schema().Node(name), nil)
	}
}

func mark(name string) Handler {
	return func(state State, _ mdast.Ref, ctx Context) {
		t := state.Schema().Mark(name)
		if ctx.Entering {
			state.OpenMark(t.Create(nil))
			return
		}
		state.CloseMark(t)
	}
}

func link(state State, node mdast.Ref, ctx Context) {
	t := state.Schema().Mark("link")
	if !ctx.Entering {
		state.CloseMark(t)
		return
	}
	title := node.Title()
	attrs := attrSet{}.
		set("linkUrl", node.Destination()).
		setIf("linkText", title, title != "").
		build()
	state.OpenMark(t.Create(attrs))
}

func code(state State, node mdast.Ref, _ Context) {
	t := state.Schema().Mark("code")
	state.OpenMark(t.Create(nil))
	state.AddText(withoutTrailingNewline(node.Literal()))
	state.CloseMark(t)
}

func isLineBreakHTML(node mdast.Ref) bool {
	return node.Kind() == mdast.KindHTMLInline && tags.IsLineBreak(node.Literal())
}

func softbreak(state State, node mdast.Ref, _ Context) {
	if isLineBreakHTML(node.Prev()) || isLineBreakHTML(node.Next()) {
		return
	}
	state.AddText("\n")
}

func htmlInline(state State, node mdast.Ref, ctx Context) {
	info, ok := tags.Resolve(node.Literal())
	if !ok {
		return
	}
	schema := state.Schema()

	if info.TagName == tags.LineBreakTag {
		if ctx.Entering {
			attrs := attrSet{}.
				set("htmlString", true).
				set("inCell", node.Parent().Kind() == mdast.KindTableCell).
				build()
			state.AddNode(schema.Node(info.NodeType), attrs)
		}
		return
	}
	if !info.Mark {
		return
	}
	t := schema.Mark(info.NodeType)
	if t == nil {
		return
	}
	if ctx.Entering {
		state.OpenMark(t.Create(attrSet{}.set("htmlString", info.TagName).build()))
		return
	}
	state.CloseMark(t)
}

func htmlBlock(state State, node mdast.Ref, ctx Context) {
	info, ok := tags.Resolve(node.Literal())
	if !ok || info.Mark {
		return
	}
	schema := state.Schema()
	t := schema.Node(info.NodeType)
	if t == nil {
		return
	}
	if !ctx.Entering {
		state.CloseNode()
		return
	}

	if info.TagName == tags.LineBreakTag {
		state.OpenNode(schema.Node("paragraph"), nil)
		state.AddNode(t, attrSet{}.set("htmlString", true).set("inCell", false).build())
		state.CloseNode()
		return
	}

	state.OpenNode(t, attrSet{}.set("htmlString", true).build())
	if info.SelfContained {
		if t.IsTextblock() {
			state.AddText(withoutTrailingNewline(tags.InnerText(node.Literal())))
		}
		state.CloseNode()
	}
}

func tableCell(state State, node mdast.Ref, ctx Context) {
	schema := state.Schema()
	if !ctx.Entering {
		state.CloseNode()
		state.CloseNode()
		return
	}
	cell := schema.Node("tableBodyCell")
	if node.Parent().Parent().Kind() == mdast.KindTableHead {
		cell = schema.Node("tableHeadCell")
	}
	state.OpenNode(cell, nil)
	state.OpenNode(schema.Node("paragraph"), nil)
}
