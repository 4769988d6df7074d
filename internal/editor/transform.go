package editor

import "github.com/seldinet/tui.editor/internal/model"

type markFn func(marks []*model.Mark) []*model.Mark

// mapInline rewrites the marks of inline content overlapping [from, to)
// inside parents that allow marks. Text nodes are split at the range
// boundaries and adjacent text with equal marks is joined again.
func mapInline(node *model.Node, contentStart, from, to int, fn markFn) *model.Node {
	if len(node.Content) == 0 {
		return node
	}
	allows := node.Type.AllowsMarks()
	content := make([]*model.Node, 0, len(node.Content))
	pos := contentStart
	changed := false

	for _, child := range node.Content {
		size := child.NodeSize()
		start, end := pos, pos+size
		pos = end

		if end <= from || start >= to {
			content = append(content, child)
			continue
		}
		switch {
		case child.IsText():
			if !allows {
				content = append(content, child)
				continue
			}
			content = append(content, splitText(child, max(from, start)-start, min(to, end)-start, fn)...)
			changed = true
		case child.Type.IsInline():
			if !allows {
				content = append(content, child)
				continue
			}
			content = append(content, child.WithMarks(fn(child.Marks)))
			changed = true
		default:
			next := mapInline(child, start+1, from, to, fn)
			content = append(content, next)
			changed = changed || next != child
		}
	}
	if !changed {
		return node
	}
	return node.WithContent(joinText(content))
}

func splitText(n *model.Node, from, to int, fn markFn) []*model.Node {
	runes := []rune(n.Text)
	var out []*model.Node
	if from > 0 {
		out = append(out, n.WithText(string(runes[:from])))
	}
	mid := n.WithText(string(runes[from:to]))
	out = append(out, mid.WithMarks(fn(n.Marks)))
	if to < len(runes) {
		out = append(out, n.WithText(string(runes[to:])))
	}
	return out
}

func joinText(content []*model.Node) []*model.Node {
	out := content[:0:0]
	for _, n := range content {
		if k := len(out); k > 0 && n.IsText() && out[k-1].IsText() && model.SameMarkSet(out[k-1].Marks, n.Marks) {
			out[k-1] = out[k-1].WithText(out[k-1].Text + n.Text)
			continue
		}
		out = append(out, n)
	}
	return out
}

func addMark(doc *model.Node, from, to int, mark *model.Mark) *model.Node {
	return mapInline(doc, 0, from, to, func(marks []*model.Mark) []*model.Mark {
		return mark.AddToSet(marks)
	})
}

func removeMark(doc *model.Node, from, to int, t *model.MarkType) *model.Node {
	return mapInline(doc, 0, from, to, func(marks []*model.Mark) []*model.Mark {
		return t.RemoveFromSet(marks)
	})
}

// rangeHasMark reports whether inline content in [from, to) that may carry
// marks already carries a mark of type t.
func rangeHasMark(doc *model.Node, from, to int, t *model.MarkType) bool {
	found := false
	doc.NodesBetween(from, to, func(n *model.Node, _ int, parent *model.Node) bool {
		if found {
			return false
		}
		if n.Type.IsInline() && parent.Type.AllowsMarks() && t.IsInSet(n.Marks) != nil {
			found = true
		}
		return !found
	})
	return found
}

// markApplies reports whether any textblock touched by [from, to) accepts
// marks.
func markApplies(doc *model.Node, from, to int) bool {
	if from == to {
		parent := resolve(doc, from).parent.Type
		return parent.IsTextblock() && parent.AllowsMarks()
	}
	applies := false
	doc.NodesBetween(from, to, func(n *model.Node, _ int, _ *model.Node) bool {
		if applies {
			return false
		}
		if n.Type.IsTextblock() && n.Type.AllowsMarks() {
			applies = true
		}
		return !applies
	})
	return applies
}
