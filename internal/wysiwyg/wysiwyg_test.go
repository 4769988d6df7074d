package wysiwyg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/marks"
	"github.com/seldinet/tui.editor/internal/model"
)

func TestNewRegistersDefaults(t *testing.T) {
	a, err := New(Options{Platform: editor.PlatformMac})
	require.NoError(t, err)

	require.Equal(t, []string{"bold", "code", "italic", "strike"}, a.CommandNames())
	require.Equal(t, []string{
		"Meta-B", "Meta-I", "Meta-S", "Meta-b", "Meta-i", "Meta-s",
		"Shift-Meta-C", "Shift-Meta-c",
	}, a.Keymap.Keys())

	for _, name := range []string{"doc", "paragraph", "heading", "codeBlock", "bulletList", "orderedList",
		"listItem", "blockQuote", "image", "thematicBreak", "hardBreak", "customBlock",
		"table", "tableHead", "tableBody", "tableRow", "tableHeadCell", "tableBodyCell"} {
		require.NotNil(t, a.Schema.Node(name), name)
	}
	for _, name := range []string{"strong", "emph", "strike", "code", "link"} {
		require.NotNil(t, a.Schema.Mark(name), name)
	}
}

func TestCommandLookup(t *testing.T) {
	a, err := New(Options{})
	require.NoError(t, err)

	_, err = a.Command("underline", nil)
	require.True(t, errors.Is(err, ErrUnknownCommand))

	s := a.Schema
	b := model.NewBuilder(s)
	b.OpenNode(s.Node("paragraph"), nil)
	b.AddText("hi")
	b.CloseNode()
	session, err := a.NewSession(b.Document())
	require.NoError(t, err)
	require.NoError(t, session.Select(1, 3))

	cmd, err := a.Command("bold", nil)
	require.NoError(t, err)
	require.True(t, session.Run(cmd))
	require.Equal(t, `doc(paragraph(strong("hi")))`, session.State().Doc.String())
}

func TestDuplicateCommandsFail(t *testing.T) {
	_, err := New(Options{Marks: []marks.Component{marks.Strong{}, marks.Strong{}}})
	require.Error(t, err)
}

func TestHeadingParseRules(t *testing.T) {
	a, err := New(Options{})
	require.NoError(t, err)

	name, isMark, attrs, ok := a.Schema.MatchTag("h4")
	require.True(t, ok)
	require.False(t, isMark)
	require.Equal(t, "heading", name)
	require.Equal(t, model.Attrs{"level": 4}, attrs)
}
