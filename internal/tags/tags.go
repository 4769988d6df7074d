// Package tags resolves raw HTML tag literals found in markdown to the
// document node or mark type they stand for.
package tags

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Target is the document type a tag name maps to.
type Target struct {
	NodeType string
	Mark     bool
}

// Info describes a resolved tag literal.
type Info struct {
	TagName  string
	NodeType string
	Mark     bool
	// Closing is set for end tags such as "</b>".
	Closing bool
	// SelfContained is set when the literal also closes the element it
	// opens, as in "<p>text</p>".
	SelfContained bool
}

var table = map[string]Target{
	"b":      {NodeType: "strong", Mark: true},
	"strong": {NodeType: "strong", Mark: true},
	"i":      {NodeType: "emph", Mark: true},
	"em":     {NodeType: "emph", Mark: true},
	"s":      {NodeType: "strike", Mark: true},
	"del":    {NodeType: "strike", Mark: true},
	"strike": {NodeType: "strike", Mark: true},
	"code":   {NodeType: "code", Mark: true},

	"br":         {NodeType: "hardBreak"},
	"p":          {NodeType: "paragraph"},
	"blockquote": {NodeType: "blockQuote"},
	"h1":         {NodeType: "heading"},
	"h2":         {NodeType: "heading"},
	"h3":         {NodeType: "heading"},
	"h4":         {NodeType: "heading"},
	"h5":         {NodeType: "heading"},
	"h6":         {NodeType: "heading"},
	"ul":         {NodeType: "bulletList"},
	"ol":         {NodeType: "orderedList"},
	"li":         {NodeType: "listItem"},
	"pre":        {NodeType: "codeBlock"},
	"table":      {NodeType: "table"},
	"thead":      {NodeType: "tableHead"},
	"tbody":      {NodeType: "tableBody"},
	"tr":         {NodeType: "tableRow"},
	"th":         {NodeType: "tableHeadCell"},
	"td":         {NodeType: "tableBodyCell"},
}

// LineBreakTag is the tag name emitted as a break node.
const LineBreakTag = "br"

// Lookup maps a bare tag name to its target.
func Lookup(tagName string) (Target, bool) {
	target, ok := table[strings.ToLower(strings.TrimSpace(tagName))]
	return target, ok
}

// TagNames lists every known tag name, sorted.
func TagNames() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve reads the first tag of literal, ignoring attributes and case, and
// maps it through the tag table. Literals starting with text, comments or a
// doctype, and unknown tags, resolve to nothing.
func Resolve(literal string) (Info, bool) {
	z := html.NewTokenizer(strings.NewReader(literal))
	for {
		switch z.Next() {
		case html.ErrorToken, html.CommentToken, html.DoctypeToken:
			return Info{}, false
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				return Info{}, false
			}
		case html.StartTagToken:
			name := tagName(z)
			info, ok := lookupInfo(name)
			if !ok {
				return Info{}, false
			}
			info.SelfContained = closesLater(z, name)
			return info, true
		case html.SelfClosingTagToken:
			return lookupInfo(tagName(z))
		case html.EndTagToken:
			info, ok := lookupInfo(tagName(z))
			info.Closing = ok
			return info, ok
		}
	}
}

func lookupInfo(name string) (Info, bool) {
	target, ok := table[name]
	if !ok {
		return Info{}, false
	}
	return Info{TagName: name, NodeType: target.NodeType, Mark: target.Mark}, true
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return string(name)
}

func closesLater(z *html.Tokenizer, name string) bool {
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.EndTagToken:
			if tagName(z) == name {
				return true
			}
		}
	}
}

// IsLineBreak reports whether literal is a line-break tag: <br>, <br/> or
// <br /> in any case.
func IsLineBreak(literal string) bool {
	info, ok := Resolve(literal)
	return ok && !info.Closing && info.TagName == LineBreakTag
}

// InnerText returns the decoded text between the first tag of literal and
// its matching end tag, or the text up to the end when it is never closed.
func InnerText(literal string) string {
	z := html.NewTokenizer(strings.NewReader(literal))
	var (
		b     strings.Builder
		first string
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			if first == "" {
				first = tagName(z)
			}
		case html.EndTagToken:
			if first != "" && tagName(z) == first {
				return b.String()
			}
		case html.TextToken:
			if first != "" {
				b.Write(z.Text())
			}
		}
	}
}
