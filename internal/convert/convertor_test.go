package convert_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"github.com/seldinet/tui.editor/internal/convert"
	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/internal/wysiwyg"
)

func init() {
	spew.Config.Indent = "  "
	spew.Config.DisablePointerAddresses = true
}

func editorSchema(t *testing.T) *model.Schema {
	t.Helper()
	a, err := wysiwyg.New(wysiwyg.Options{})
	require.NoError(t, err)
	return a.Schema
}

// recorder logs every builder call in a compact form.
type recorder struct {
	*model.Builder
	ops []string
}

func newRecorder(schema *model.Schema) *recorder {
	return &recorder{Builder: model.NewBuilder(schema)}
}

func formatOpAttrs(attrs model.Attrs) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, attrs[k]))
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (r *recorder) OpenNode(t *model.NodeType, attrs model.Attrs) {
	r.ops = append(r.ops, "open "+t.Name+formatOpAttrs(attrs))
	r.Builder.OpenNode(t, attrs)
}

func (r *recorder) CloseNode() *model.Node {
	r.ops = append(r.ops, "close")
	return r.Builder.CloseNode()
}

func (r *recorder) AddNode(t *model.NodeType, attrs model.Attrs) *model.Node {
	r.ops = append(r.ops, "add "+t.Name+formatOpAttrs(attrs))
	return r.Builder.AddNode(t, attrs)
}

func (r *recorder) AddText(text string) {
	r.ops = append(r.ops, fmt.Sprintf("text %q", text))
	r.Builder.AddText(text)
}

func (r *recorder) OpenMark(m *model.Mark) {
	r.ops = append(r.ops, "mark+ "+m.Type.Name+formatOpAttrs(m.Attrs))
	r.Builder.OpenMark(m)
}

func (r *recorder) CloseMark(t *model.MarkType) {
	r.ops = append(r.ops, "mark- "+t.Name)
	r.Builder.CloseMark(t)
}

func requireOps(t *testing.T, want, got []string) {
	t.Helper()
	if strings.Join(want, "\n") != strings.Join(got, "\n") {
		t.Fatalf("expected vs. got DIFF:\n%s", diff.Diff(spew.Sdump(want), spew.Sdump(got)))
	}
}

func convertTree(t *testing.T, tree *mdast.Tree) *model.Node {
	t.Helper()
	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)
	doc, err := c.Convert(context.Background(), tree)
	require.NoError(t, err)
	return doc
}

func paragraph(tree *mdast.Tree, parent mdast.NodeID, text string) mdast.NodeID {
	id := tree.Append(parent, mdast.Node{Kind: mdast.KindParagraph})
	tree.AppendText(id, text)
	return id
}

func TestHeadingEvents(t *testing.T) {
	tree := mdast.NewTree()
	h := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHeading, Level: 2})
	tree.AppendText(h, "Hi")

	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)
	rec := newRecorder(c.Schema())
	require.NoError(t, c.ConvertInto(context.Background(), rec, tree))

	requireOps(t, []string{
		"open heading{level=2}",
		`text "Hi"`,
		"close",
	}, rec.ops)
	require.Equal(t, `doc(heading(level=2, "Hi"))`, rec.Document().String())
}

func TestImageSkipsChildren(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	img := tree.Append(p, mdast.Node{Kind: mdast.KindImage, Destination: "a.png"})
	tree.AppendText(img, "alt")
	em := tree.Append(img, mdast.Node{Kind: mdast.KindEmph})
	tree.AppendText(em, "ignored")

	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)
	rec := newRecorder(c.Schema())
	require.NoError(t, c.ConvertInto(context.Background(), rec, tree))

	requireOps(t, []string{
		"open paragraph",
		"add image{altText=alt imageUrl=a.png}",
		"close",
	}, rec.ops)
}

func TestImageWithoutAltText(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	tree.Append(p, mdast.Node{Kind: mdast.KindImage, Destination: "a.png"})

	doc := convertTree(t, tree)
	image := doc.Child(0).Child(0)
	require.Equal(t, "a.png", image.Attrs["imageUrl"])
	require.Nil(t, image.Attrs["altText"])
}

func TestSoftbreaks(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		tree := mdast.NewTree()
		p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
		tree.AppendText(p, "a")
		tree.Append(p, mdast.Node{Kind: mdast.KindSoftbreak})
		tree.AppendText(p, "b")
		require.Equal(t, `doc(paragraph("a\nb"))`, convertTree(t, tree).String())
	})

	t.Run("after html line break", func(t *testing.T) {
		tree := mdast.NewTree()
		p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
		tree.AppendText(p, "a")
		tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<br>"})
		tree.Append(p, mdast.Node{Kind: mdast.KindSoftbreak})
		tree.AppendText(p, "b")
		require.Equal(t, `doc(paragraph("a", hardBreak(htmlString=true), "b"))`, convertTree(t, tree).String())
	})

	t.Run("before html line break", func(t *testing.T) {
		tree := mdast.NewTree()
		p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
		tree.AppendText(p, "a")
		tree.Append(p, mdast.Node{Kind: mdast.KindSoftbreak})
		tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<br />"})
		tree.AppendText(p, "b")
		require.Equal(t, `doc(paragraph("a", hardBreak(htmlString=true), "b"))`, convertTree(t, tree).String())
	})
}

func TestHardBreak(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	tree.AppendText(p, "a")
	tree.Append(p, mdast.Node{Kind: mdast.KindLinebreak})
	tree.AppendText(p, "b")
	require.Equal(t, `doc(paragraph("a", hardBreak, "b"))`, convertTree(t, tree).String())
}

func buildTable(tree *mdast.Tree) mdast.NodeID {
	table := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindTable})
	head := tree.Append(table, mdast.Node{Kind: mdast.KindTableHead})
	headRow := tree.Append(head, mdast.Node{Kind: mdast.KindTableRow})
	headCell := tree.Append(headRow, mdast.Node{Kind: mdast.KindTableCell})
	tree.AppendText(headCell, "h")
	body := tree.Append(table, mdast.Node{Kind: mdast.KindTableBody})
	bodyRow := tree.Append(body, mdast.Node{Kind: mdast.KindTableRow})
	bodyCell := tree.Append(bodyRow, mdast.Node{Kind: mdast.KindTableCell})
	tree.AppendText(bodyCell, "b")
	return bodyCell
}

func TestTableCells(t *testing.T) {
	tree := mdast.NewTree()
	buildTable(tree)
	require.Equal(t,
		`doc(table(tableHead(tableRow(tableHeadCell(paragraph("h")))), tableBody(tableRow(tableBodyCell(paragraph("b"))))))`,
		convertTree(t, tree).String())
}

func TestLineBreakInCell(t *testing.T) {
	tree := mdast.NewTree()
	cell := buildTable(tree)
	tree.Append(cell, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<br>"})
	tree.AppendText(cell, "c")

	doc := convertTree(t, tree)
	para := doc.Child(0).Child(1).Child(0).Child(0).Child(0)
	require.Equal(t, `paragraph("b", hardBreak(htmlString=true inCell=true), "c")`, para.String())
}

func TestCustomBlockTrailingParagraph(t *testing.T) {
	t.Run("last block", func(t *testing.T) {
		tree := mdast.NewTree()
		tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindCustomBlock, Info: "chart", Literal: "a\n"})
		require.Equal(t, `doc(customBlock(info="chart", "a"), paragraph)`, convertTree(t, tree).String())
	})

	t.Run("followed by content", func(t *testing.T) {
		tree := mdast.NewTree()
		tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindCustomBlock, Info: "chart", Literal: "a\n"})
		paragraph(tree, tree.Root(), "x")
		require.Equal(t, `doc(customBlock(info="chart", "a"), paragraph("x"))`, convertTree(t, tree).String())
	})
}

func TestCodeBlockStripsOneNewline(t *testing.T) {
	tree := mdast.NewTree()
	tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindCodeBlock, Info: "go", Literal: "x\n\n"})
	require.Equal(t, `doc(codeBlock(language="go", "x\n"))`, convertTree(t, tree).String())
}

func TestListItems(t *testing.T) {
	tree := mdast.NewTree()
	bullet := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindList, ListData: &mdast.ListData{Type: "bullet"}})
	task := tree.Append(bullet, mdast.Node{Kind: mdast.KindItem, ListData: &mdast.ListData{Type: "bullet", Task: true}})
	paragraph(tree, task, "t")
	done := tree.Append(bullet, mdast.Node{Kind: mdast.KindItem, ListData: &mdast.ListData{Type: "bullet", Task: true, Checked: true}})
	paragraph(tree, done, "d")
	ordered := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindList, ListData: &mdast.ListData{Type: "ordered", Start: 3}})
	item := tree.Append(ordered, mdast.Node{Kind: mdast.KindItem, ListData: &mdast.ListData{Type: "ordered", Start: 3}})
	paragraph(tree, item, "o")

	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)
	rec := newRecorder(c.Schema())
	require.NoError(t, c.ConvertInto(context.Background(), rec, tree))

	requireOps(t, []string{
		"open bulletList",
		"open listItem{task=true}",
		"open paragraph",
		`text "t"`,
		"close",
		"close",
		"open listItem{checked=true task=true}",
		"open paragraph",
		`text "d"`,
		"close",
		"close",
		"close",
		"open orderedList{order=3}",
		"open listItem",
		"open paragraph",
		`text "o"`,
		"close",
		"close",
		"close",
	}, rec.ops)
}

func TestMarks(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	strong := tree.Append(p, mdast.Node{Kind: mdast.KindStrong})
	em := tree.Append(strong, mdast.Node{Kind: mdast.KindEmph})
	tree.AppendText(em, "x")
	del := tree.Append(p, mdast.Node{Kind: mdast.KindStrike})
	tree.AppendText(del, "y")
	tree.Append(p, mdast.Node{Kind: mdast.KindCode, Literal: "z"})
	link := tree.Append(p, mdast.Node{Kind: mdast.KindLink, Destination: "https://a.io", Title: "A"})
	tree.AppendText(link, "l")

	doc := convertTree(t, tree)
	require.Equal(t, `doc(paragraph(emph(strong("x")), strike("y"), code("z"), link("l")))`, doc.String())

	linked := doc.Child(0).Child(3)
	require.Equal(t, "https://a.io", linked.Marks[0].Attrs["linkUrl"])
	require.Equal(t, "A", linked.Marks[0].Attrs["linkText"])
}

func TestLinkWithoutTitle(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	link := tree.Append(p, mdast.Node{Kind: mdast.KindLink, Destination: "u"})
	tree.AppendText(link, "l")

	doc := convertTree(t, tree)
	require.Nil(t, doc.Child(0).Child(0).Marks[0].Attrs["linkText"])
}

func TestInlineHTMLMarks(t *testing.T) {
	tree := mdast.NewTree()
	p := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindParagraph})
	tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<b>"})
	tree.AppendText(p, "x")
	tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "</b>"})
	tree.AppendText(p, "y")
	tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<span>"})
	tree.Append(p, mdast.Node{Kind: mdast.KindHTMLInline, Literal: "<p>"})

	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)
	rec := newRecorder(c.Schema())
	require.NoError(t, c.ConvertInto(context.Background(), rec, tree))

	requireOps(t, []string{
		"open paragraph",
		"mark+ strong{htmlString=b}",
		`text "x"`,
		"mark- strong",
		`text "y"`,
		"close",
	}, rec.ops)

	doc := rec.Document()
	require.Equal(t, `doc(paragraph(strong("x"), "y"))`, doc.String())
	require.Equal(t, "b", doc.Child(0).Child(0).Marks[0].Attrs["htmlString"])
}

func TestHTMLBlocks(t *testing.T) {
	cases := []struct {
		name  string
		build func(tree *mdast.Tree)
		want  string
	}{
		{
			name: "self contained paragraph",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<p>hi</p>\n"})
			},
			want: `doc(paragraph(htmlString=true, "hi"))`,
		},
		{
			name: "line break",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<br>\n"})
			},
			want: `doc(paragraph(hardBreak(htmlString=true)))`,
		},
		{
			name: "open and close around markdown",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<blockquote>\n"})
				paragraph(tree, tree.Root(), "a")
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "</blockquote>\n"})
				paragraph(tree, tree.Root(), "b")
			},
			want: `doc(blockQuote(htmlString=true, paragraph("a")), paragraph("b"))`,
		},
		{
			name: "dangling open closed at end",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<blockquote>\n"})
				paragraph(tree, tree.Root(), "a")
			},
			want: `doc(blockQuote(htmlString=true, paragraph("a")))`,
		},
		{
			name: "dangling open closed with its container",
			build: func(tree *mdast.Tree) {
				quote := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindBlockQuote})
				tree.Append(quote, mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<ul>\n"})
				paragraph(tree, quote, "a")
				paragraph(tree, tree.Root(), "b")
			},
			want: `doc(blockQuote(bulletList(htmlString=true, paragraph("a"))), paragraph("b"))`,
		},
		{
			name: "stray close ignored",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "</ul>\n"})
				paragraph(tree, tree.Root(), "a")
			},
			want: `doc(paragraph("a"))`,
		},
		{
			name: "stray close cannot leave its container",
			build: func(tree *mdast.Tree) {
				quote := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindBlockQuote})
				tree.Append(quote, mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "</blockquote>\n"})
				paragraph(tree, quote, "a")
			},
			want: `doc(blockQuote(paragraph("a")))`,
		},
		{
			name: "unknown tag dropped",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<div>x</div>\n"})
				paragraph(tree, tree.Root(), "a")
			},
			want: `doc(paragraph("a"))`,
		},
		{
			name: "mark tag dropped",
			build: func(tree *mdast.Tree) {
				tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<strong>\n"})
				paragraph(tree, tree.Root(), "a")
			},
			want: `doc(paragraph("a"))`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mdast.NewTree()
			tc.build(tree)
			require.Equal(t, tc.want, convertTree(t, tree).String())
		})
	}
}

func TestConvertIntoKeepsDepth(t *testing.T) {
	schema := editorSchema(t)
	c, err := convert.New(schema)
	require.NoError(t, err)

	tree := mdast.NewTree()
	tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindHTMLBlock, Literal: "<blockquote>\n"})
	paragraph(tree, tree.Root(), "a")

	b := model.NewBuilder(schema)
	b.OpenNode(schema.Node("listItem"), nil)
	require.NoError(t, c.ConvertInto(context.Background(), b, tree))
	require.Equal(t, 1, b.Depth())
	b.CloseNode()
	require.Equal(t, `doc(listItem(blockQuote(htmlString=true, paragraph("a"))))`, b.Document().String())
}

func TestCustomHandlers(t *testing.T) {
	schema := editorSchema(t)

	t.Run("override", func(t *testing.T) {
		c, err := convert.New(schema, convert.WithTable(convert.Table{
			mdast.KindThematicBreak: func(state convert.State, _ mdast.Ref, _ convert.Context) {
				state.OpenNode(state.Schema().Node("paragraph"), nil)
				state.AddText("---")
				state.CloseNode()
			},
		}))
		require.NoError(t, err)

		tree := mdast.NewTree()
		tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindThematicBreak})
		doc, err := c.Convert(context.Background(), tree)
		require.NoError(t, err)
		require.Equal(t, `doc(paragraph("---"))`, doc.String())
	})

	t.Run("skip children", func(t *testing.T) {
		c, err := convert.New(schema, convert.WithTable(convert.Table{
			mdast.KindBlockQuote: func(state convert.State, _ mdast.Ref, ctx convert.Context) {
				if ctx.Entering {
					state.OpenNode(state.Schema().Node("blockQuote"), nil)
					ctx.SkipChildren()
				}
			},
		}))
		require.NoError(t, err)

		tree := mdast.NewTree()
		quote := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindBlockQuote})
		paragraph(tree, quote, "hidden")
		paragraph(tree, tree.Root(), "b")
		doc, err := c.Convert(context.Background(), tree)
		require.NoError(t, err)
		require.Equal(t, `doc(blockQuote, paragraph("b"))`, doc.String())
	})

	t.Run("excess closes", func(t *testing.T) {
		c, err := convert.New(schema, convert.WithTable(convert.Table{
			mdast.KindParagraph: func(state convert.State, _ mdast.Ref, ctx convert.Context) {
				if ctx.Entering {
					state.OpenNode(state.Schema().Node("paragraph"), nil)
					return
				}
				for i := 0; i < 3; i++ {
					state.CloseNode()
				}
			},
		}))
		require.NoError(t, err)

		tree := mdast.NewTree()
		quote := tree.Append(tree.Root(), mdast.Node{Kind: mdast.KindBlockQuote})
		paragraph(tree, quote, "a")
		paragraph(tree, quote, "b")
		doc, err := c.Convert(context.Background(), tree)
		require.NoError(t, err)
		require.Equal(t, `doc(blockQuote(paragraph("a"), paragraph("b")))`, doc.String())
	})
}

func noop(convert.State, mdast.Ref, convert.Context) {}

func minimalSchema(t *testing.T, extra ...model.NodeSpec) *model.Schema {
	t.Helper()
	nodes := []model.NodeSpec{
		{Name: "doc", Content: "block+"},
		{Name: "paragraph", Content: "inline*", Group: "block"},
		{Name: "text", Group: "inline"},
	}
	schema, err := model.NewSchema(model.SchemaSpec{Nodes: append(nodes, extra...)})
	require.NoError(t, err)
	return schema
}

func overridesExcept(keep ...mdast.Kind) convert.Table {
	kept := map[mdast.Kind]bool{}
	for _, k := range keep {
		kept[k] = true
	}
	table := convert.Table{}
	for _, kind := range mdast.Convertible() {
		if !kept[kind] {
			table[kind] = noop
		}
	}
	return table
}

func TestNewValidation(t *testing.T) {
	t.Run("nil schema", func(t *testing.T) {
		_, err := convert.New(nil)
		require.True(t, errors.Is(err, convert.ErrNilSchema))
	})

	t.Run("missing handler", func(t *testing.T) {
		_, err := convert.New(editorSchema(t), convert.WithTable(convert.Table{mdast.KindText: nil}))
		require.True(t, errors.Is(err, convert.ErrMissingHandler))
		require.Contains(t, err.Error(), "text")
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := convert.New(minimalSchema(t))
		require.True(t, errors.Is(err, convert.ErrMissingType))
		require.Contains(t, err.Error(), "node heading")
		require.Contains(t, err.Error(), "mark strong")
	})

	t.Run("overridden kinds are not checked", func(t *testing.T) {
		_, err := convert.New(minimalSchema(t), convert.WithTable(
			overridesExcept(mdast.KindText, mdast.KindParagraph, mdast.KindSoftbreak),
		))
		require.NoError(t, err)
	})

	t.Run("unknown tag type", func(t *testing.T) {
		schema := minimalSchema(t, model.NodeSpec{Name: "hardBreak", Group: "inline", Inline: true})
		_, err := convert.New(schema, convert.WithTable(
			overridesExcept(mdast.KindText, mdast.KindParagraph, mdast.KindSoftbreak, mdast.KindHTMLInline),
		))
		require.True(t, errors.Is(err, convert.ErrUnknownTagType))
		require.Contains(t, err.Error(), "blockquote -> node blockQuote")
	})
}

func TestConvertErrors(t *testing.T) {
	c, err := convert.New(editorSchema(t))
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), nil)
	require.True(t, errors.Is(err, convert.ErrNilTree))

	require.True(t, errors.Is(c.ConvertInto(context.Background(), nil, mdast.NewTree()), convert.ErrNilState))

	tree := mdast.NewTree()
	paragraph(tree, tree.Root(), "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Convert(ctx, tree)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestEmptyTree(t *testing.T) {
	require.Equal(t, "doc", convertTree(t, mdast.NewTree()).String())
}
