package mdast

import (
	"strings"
	"testing"
)

func buildSample() (*Tree, map[string]NodeID) {
	t := NewTree()
	ids := map[string]NodeID{}
	ids["para"] = t.Append(t.Root(), Node{Kind: KindParagraph})
	ids["a"] = t.AppendText(ids["para"], "a")
	ids["soft"] = t.Append(ids["para"], Node{Kind: KindSoftbreak})
	ids["strong"] = t.Append(ids["para"], Node{Kind: KindStrong})
	ids["b"] = t.AppendText(ids["strong"], "b")
	ids["image"] = t.Append(ids["para"], Node{Kind: KindImage, Destination: "a.png"})
	ids["alt"] = t.AppendText(ids["image"], "alt")
	ids["hr"] = t.Append(t.Root(), Node{Kind: KindThematicBreak})
	return t, ids
}

func TestTreeLinks(t *testing.T) {
	tree, ids := buildSample()

	soft := tree.Ref(ids["soft"])
	if soft.Prev().ID() != ids["a"] {
		t.Fatalf("expected prev of softbreak to be text a, got %s", soft.Prev())
	}
	if soft.Next().ID() != ids["strong"] {
		t.Fatalf("expected next of softbreak to be strong, got %s", soft.Next())
	}
	if got := tree.Ref(ids["b"]).Parent().Parent().Kind(); got != KindParagraph {
		t.Fatalf("expected grandparent paragraph, got %s", got)
	}
	if tree.Ref(ids["hr"]).Next().Valid() {
		t.Fatal("expected last block to have no next sibling")
	}
	if got := tree.Ref(tree.Root()).Parent().Kind(); got != KindNone {
		t.Fatalf("expected root parent to be none, got %s", got)
	}
	if got := tree.Ref(ids["image"]).FirstChild().Literal(); got != "alt" {
		t.Fatalf("expected image first child literal alt, got %q", got)
	}
}

func TestRefZeroValues(t *testing.T) {
	tree, ids := buildSample()
	para := tree.Ref(ids["para"])
	if data := para.ListData(); data != (ListData{}) {
		t.Fatalf("expected zero list data, got %#v", data)
	}
	var invalid Ref
	if invalid.Valid() || invalid.Kind() != KindNone || invalid.Literal() != "" {
		t.Fatal("expected zero ref to be invalid and empty")
	}
	if invalid.Next().Valid() {
		t.Fatal("expected navigation from invalid ref to stay invalid")
	}
}

func TestWalkerEvents(t *testing.T) {
	tree, _ := buildSample()

	var got []string
	w := tree.Walk()
	for {
		ev, ok := w.Next()
		if !ok {
			break
		}
		prefix := "-"
		if ev.Entering {
			prefix = "+"
		}
		got = append(got, prefix+ev.Node.Kind().String())
	}

	want := strings.Join([]string{
		"+document", "+paragraph", "+text", "+softbreak",
		"+strong", "+text", "-strong",
		"+image", "+text", "-image",
		"-paragraph", "+thematicBreak", "-document",
	}, " ")
	if strings.Join(got, " ") != want {
		t.Fatalf("unexpected walk\n got: %s\nwant: %s", strings.Join(got, " "), want)
	}
}

func TestWalkerSkipChildren(t *testing.T) {
	tree, ids := buildSample()

	var visited []NodeID
	w := tree.Walk()
	for {
		ev, ok := w.Next()
		if !ok {
			break
		}
		visited = append(visited, ev.Node.ID())
		if ev.Entering && ev.Node.Kind() == KindImage {
			w.SkipChildren()
		}
	}

	imageEvents := 0
	for _, id := range visited {
		if id == ids["alt"] {
			t.Fatal("expected image children to be skipped")
		}
		if id == ids["image"] {
			imageEvents++
		}
	}
	if imageEvents != 1 {
		t.Fatalf("expected a single image event, got %d", imageEvents)
	}
	if visited[len(visited)-1] != tree.Root() {
		t.Fatal("expected traversal to finish on the document exit")
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Convertible() {
		parsed, ok := ParseKind(kind.String())
		if !ok || parsed != kind {
			t.Fatalf("ParseKind(%q) = %v, %v", kind.String(), parsed, ok)
		}
	}
	if _, ok := ParseKind("footnote"); ok {
		t.Fatal("expected unknown kind name to fail")
	}
	if len(Convertible()) != 24 {
		t.Fatalf("expected 24 convertible kinds, got %d", len(Convertible()))
	}
}
