package mdast

// Kind identifies the markdown construct a source node represents.
type Kind uint8

const (
	KindNone Kind = iota
	KindDocument
	KindText
	KindParagraph
	KindHeading
	KindCodeBlock
	KindList
	KindItem
	KindBlockQuote
	KindImage
	KindThematicBreak
	KindStrong
	KindEmph
	KindLink
	KindSoftbreak
	KindLinebreak
	KindHTMLInline
	KindHTMLBlock
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableCell
	KindStrike
	KindCode
	KindCustomBlock

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:          "none",
	KindDocument:      "document",
	KindText:          "text",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindCodeBlock:     "codeBlock",
	KindList:          "list",
	KindItem:          "item",
	KindBlockQuote:    "blockQuote",
	KindImage:         "image",
	KindThematicBreak: "thematicBreak",
	KindStrong:        "strong",
	KindEmph:          "emph",
	KindLink:          "link",
	KindSoftbreak:     "softbreak",
	KindLinebreak:     "linebreak",
	KindHTMLInline:    "htmlInline",
	KindHTMLBlock:     "htmlBlock",
	KindTable:         "table",
	KindTableHead:     "tableHead",
	KindTableBody:     "tableBody",
	KindTableRow:      "tableRow",
	KindTableCell:     "tableCell",
	KindStrike:        "strike",
	KindCode:          "code",
	KindCustomBlock:   "customBlock",
}

// String returns the markdown node type name, e.g. "codeBlock".
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a node type name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindDocument; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// Convertible lists every kind a convertor is expected to handle. The
// document root is excluded; it maps onto the builder's implicit top node.
func Convertible() []Kind {
	kinds := make([]Kind, 0, int(kindCount)-2)
	for k := KindText; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsLeaf reports whether nodes of this kind never carry children and so
// produce a single traversal event.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindText, KindSoftbreak, KindLinebreak, KindThematicBreak,
		KindCode, KindCodeBlock, KindCustomBlock, KindHTMLInline, KindHTMLBlock:
		return true
	}
	return false
}
