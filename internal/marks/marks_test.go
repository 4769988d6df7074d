package marks_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldinet/tui.editor/internal/editor"
	"github.com/seldinet/tui.editor/internal/marks"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/internal/wysiwyg"
)

func keys(m map[string]editor.Command) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestMarkContracts(t *testing.T) {
	cases := []struct {
		component marks.Component
		name      string
		commands  []string
		keys      []string
		parse     []string
	}{
		{component: marks.Code{}, name: "code", commands: []string{"code"}, keys: []string{"Shift-Mod-C", "Shift-Mod-c"}, parse: []string{"code"}},
		{component: marks.Strike{}, name: "strike", commands: []string{"strike"}, keys: []string{"Mod-S", "Mod-s"}, parse: []string{"s", "del"}},
		{component: marks.Strong{}, name: "strong", commands: []string{"bold"}, keys: []string{"Mod-B", "Mod-b"}, parse: []string{"b", "strong"}},
		{component: marks.Emph{}, name: "emph", commands: []string{"italic"}, keys: []string{"Mod-I", "Mod-i"}, parse: []string{"i", "em"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.component.Name())

			var commands []string
			for name := range tc.component.Commands() {
				commands = append(commands, name)
			}
			require.Equal(t, tc.commands, commands)
			require.Equal(t, tc.keys, keys(tc.component.Keymaps()))

			var parse []string
			for _, rule := range tc.component.DefaultSchema().ParseDOM {
				parse = append(parse, rule.Tag)
			}
			require.Equal(t, tc.parse, parse)
		})
	}
}

func TestMarkDefaults(t *testing.T) {
	code := marks.Code{}.DefaultSchema().Attrs["htmlToken"]
	require.Nil(t, code.Default)

	strike := marks.Strike{}.DefaultSchema().Attrs["htmlString"]
	require.Nil(t, strike.Default)

	strong := marks.Strong{}.DefaultSchema().Attrs["htmlString"]
	require.Equal(t, false, strong.Default)
}

func renderMarked(t *testing.T, a *wysiwyg.Assembly, mark *model.Mark) string {
	t.Helper()
	b := model.NewBuilder(a.Schema)
	b.OpenNode(a.Schema.Node("paragraph"), nil)
	b.OpenMark(mark)
	b.AddText("x")
	b.CloseNode()
	out, err := a.Schema.RenderHTML(b.Document())
	require.NoError(t, err)
	return out
}

func TestMarkRenderRules(t *testing.T) {
	a, err := wysiwyg.New(wysiwyg.Options{})
	require.NoError(t, err)
	s := a.Schema

	cases := []struct {
		name string
		mark *model.Mark
		want string
	}{
		{name: "code default", mark: s.Mark("code").Create(nil), want: "<p><code>x</code></p>"},
		{name: "code token", mark: s.Mark("code").Create(model.Attrs{"htmlToken": "kbd"}), want: "<p><kbd>x</kbd></p>"},
		{name: "code ignores htmlString", mark: s.Mark("code").Create(model.Attrs{"htmlString": "code"}), want: "<p><code>x</code></p>"},
		{name: "strike default", mark: s.Mark("strike").Create(nil), want: "<p><del>x</del></p>"},
		{name: "strike source tag", mark: s.Mark("strike").Create(model.Attrs{"htmlString": "s"}), want: "<p><s>x</s></p>"},
		{name: "strong default", mark: s.Mark("strong").Create(nil), want: "<p><strong>x</strong></p>"},
		{name: "strong from html", mark: s.Mark("strong").Create(model.Attrs{"htmlString": "b"}), want: `<p><strong data-pass="true">x</strong></p>`},
		{name: "link", mark: s.Mark("link").Create(model.Attrs{"linkUrl": "https://a.io", "linkText": "A"}), want: `<p><a href="https://a.io" title="A">x</a></p>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, renderMarked(t, a, tc.mark))
		})
	}
}

func TestKeymapTogglesMarks(t *testing.T) {
	a, err := wysiwyg.New(wysiwyg.Options{Platform: editor.PlatformOther})
	require.NoError(t, err)

	b := model.NewBuilder(a.Schema)
	b.OpenNode(a.Schema.Node("paragraph"), nil)
	b.AddText("abc")
	b.CloseNode()

	session, err := a.NewSession(b.Document())
	require.NoError(t, err)
	require.NoError(t, session.Select(1, 4))

	for _, key := range []string{"Ctrl-b", "Shift-Ctrl-C", "Ctrl-S", "Ctrl-i"} {
		handled, err := session.HandleKey(key)
		require.NoError(t, err)
		require.True(t, handled, key)
	}
	require.Equal(t, `doc(paragraph(code(strike(emph(strong("abc"))))))`, session.State().Doc.String())

	handled, err := session.HandleKey("Mod-B")
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, `doc(paragraph(code(strike(emph("abc")))))`, session.State().Doc.String())
}
