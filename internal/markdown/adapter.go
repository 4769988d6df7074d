package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/seldinet/tui.editor/internal/mdast"
)

// adapter copies a goldmark AST into an mdast.Tree.
type adapter struct {
	tree      *mdast.Tree
	source    []byte
	hardWraps bool
	safeMode  bool
	// set after a task checkbox so the following text loses its leading space
	trimNext bool
}

func adapt(doc ast.Node, source []byte, hardWraps, safeMode bool) *mdast.Tree {
	a := &adapter{
		tree:      mdast.NewTree(),
		source:    source,
		hardWraps: hardWraps,
		safeMode:  safeMode,
	}
	a.children(doc, a.tree.Root())
	return a.tree
}

func (a *adapter) children(n ast.Node, parent mdast.NodeID) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		a.node(child, parent)
	}
}

func (a *adapter) append(parent mdast.NodeID, node mdast.Node) mdast.NodeID {
	return a.tree.Append(parent, node)
}

func (a *adapter) node(n ast.Node, parent mdast.NodeID) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindParagraph}))

	case *ast.Heading:
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindHeading, Level: node.Level}))

	case *ast.ThematicBreak:
		a.append(parent, mdast.Node{Kind: mdast.KindThematicBreak})

	case *ast.FencedCodeBlock:
		var info string
		if node.Info != nil {
			info = strings.TrimSpace(string(node.Info.Segment.Value(a.source)))
		}
		a.append(parent, mdast.Node{Kind: mdast.KindCodeBlock, Info: info, Literal: a.lines(node.Lines())})

	case *ast.CodeBlock:
		a.append(parent, mdast.Node{Kind: mdast.KindCodeBlock, Literal: a.lines(node.Lines())})

	case *CustomBlock:
		a.append(parent, mdast.Node{Kind: mdast.KindCustomBlock, Info: node.Info, Literal: a.lines(node.Lines())})

	case *ast.Blockquote:
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindBlockQuote}))

	case *ast.List:
		data := listData(node)
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindList, ListData: &data}))

	case *ast.ListItem:
		var data mdast.ListData
		if list, ok := node.Parent().(*ast.List); ok {
			data = listData(list)
		}
		if box := taskCheckBox(node); box != nil {
			data.Task = true
			data.Checked = box.IsChecked
		}
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindItem, ListData: &data}))

	case *ast.HTMLBlock:
		if a.safeMode {
			return
		}
		literal := a.lines(node.Lines())
		if node.HasClosure() {
			literal += string(node.ClosureLine.Value(a.source))
		}
		a.append(parent, mdast.Node{Kind: mdast.KindHTMLBlock, Literal: literal})

	case *extast.Table:
		a.table(node, parent)

	case *ast.Text:
		value := string(node.Segment.Value(a.source))
		if !node.IsRaw() {
			value = unescape(value)
		}
		a.text(parent, value)
		switch {
		case node.HardLineBreak(), node.SoftLineBreak() && a.hardWraps:
			a.append(parent, mdast.Node{Kind: mdast.KindLinebreak})
		case node.SoftLineBreak():
			a.append(parent, mdast.Node{Kind: mdast.KindSoftbreak})
		}

	case *ast.String:
		a.text(parent, string(node.Value))

	case *ast.Emphasis:
		kind := mdast.KindEmph
		if node.Level >= 2 {
			kind = mdast.KindStrong
		}
		a.children(node, a.append(parent, mdast.Node{Kind: kind}))

	case *extast.Strikethrough:
		a.children(node, a.append(parent, mdast.Node{Kind: mdast.KindStrike}))

	case *ast.CodeSpan:
		a.append(parent, mdast.Node{Kind: mdast.KindCode, Literal: a.codeSpan(node)})

	case *ast.Link:
		a.children(node, a.append(parent, mdast.Node{
			Kind:        mdast.KindLink,
			Destination: string(node.Destination),
			Title:       string(node.Title),
		}))

	case *ast.AutoLink:
		id := a.append(parent, mdast.Node{Kind: mdast.KindLink, Destination: string(node.URL(a.source))})
		a.text(id, string(node.Label(a.source)))

	case *ast.Image:
		id := a.append(parent, mdast.Node{
			Kind:        mdast.KindImage,
			Destination: string(node.Destination),
			Title:       string(node.Title),
		})
		a.text(id, unescape(string(node.Text(a.source))))

	case *ast.RawHTML:
		if a.safeMode {
			return
		}
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			b.Write(segment.Value(a.source))
		}
		a.append(parent, mdast.Node{Kind: mdast.KindHTMLInline, Literal: b.String()})

	case *extast.TaskCheckBox:
		a.trimNext = true

	default:
		// unknown containers are flattened into their parent
		a.children(n, parent)
	}
}

// text appends value, extending a preceding text sibling instead of adding a
// new node. Empty values are dropped so sibling lookups see real neighbours.
func (a *adapter) text(parent mdast.NodeID, value string) {
	if a.trimNext {
		value = strings.TrimLeft(value, " \t")
		a.trimNext = false
	}
	if value == "" {
		return
	}
	if last := a.tree.Ref(parent).LastChild(); last.Kind() == mdast.KindText {
		a.tree.Node(last.ID()).Literal += value
		return
	}
	a.tree.AppendText(parent, value)
}

func (a *adapter) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(a.source))
	}
	return buf.String()
}

func (a *adapter) codeSpan(node *ast.CodeSpan) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Segment.Value(a.source)
			if bytes.HasSuffix(value, []byte("\n")) {
				value = append(value[:len(value)-1:len(value)-1], ' ')
			}
			b.Write(value)
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

// table reshapes goldmark's header/row children into head and body groups.
func (a *adapter) table(node *extast.Table, parent mdast.NodeID) {
	table := a.append(parent, mdast.Node{Kind: mdast.KindTable})
	body := mdast.NoNode
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			head := a.append(table, mdast.Node{Kind: mdast.KindTableHead})
			a.cells(row, a.append(head, mdast.Node{Kind: mdast.KindTableRow}))
		case *extast.TableRow:
			if body == mdast.NoNode {
				body = a.append(table, mdast.Node{Kind: mdast.KindTableBody})
			}
			a.cells(row, a.append(body, mdast.Node{Kind: mdast.KindTableRow}))
		}
	}
}

func (a *adapter) cells(row ast.Node, parent mdast.NodeID) {
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		if cell, ok := child.(*extast.TableCell); ok {
			a.children(cell, a.append(parent, mdast.Node{Kind: mdast.KindTableCell}))
		}
	}
}

func listData(list *ast.List) mdast.ListData {
	if list.IsOrdered() {
		return mdast.ListData{Type: "ordered", Start: list.Start}
	}
	return mdast.ListData{Type: "bullet"}
}

func taskCheckBox(item *ast.ListItem) *extast.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	box, _ := first.FirstChild().(*extast.TaskCheckBox)
	return box
}

func unescape(value string) string {
	if !strings.ContainsAny(value, `\&`) {
		return value
	}
	b := util.UnescapePunctuations([]byte(value))
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}
