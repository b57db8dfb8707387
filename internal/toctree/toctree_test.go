package toctree

import (
	"strings"
	"testing"

	"github.com/dgallion1/navtree/internal/doctree"
)

func siteTree() *doctree.DocTree {
	return &doctree.DocTree{
		Title: "index",
		Children: []*doctree.DocNode{
			{Title: "Guide", Children: []*doctree.DocNode{
				{Title: "Install", Name: "install"},
				{Title: "Usage", Name: "usage", Children: []*doctree.DocNode{
					{Title: "CLI", Name: "usage/cli", Children: []*doctree.DocNode{
						{Title: "Flags", Anchor: "flags"},
						{Title: "Deep", Name: "usage/cli/deep"},
					}},
				}},
			}},
			{Title: "Changelog", Name: "changelog", Hidden: true},
		},
	}
}

func TestRender_NavigationOptions(t *testing.T) {
	out, err := Render(siteTree(), "usage/cli", Options{TitlesOnly: true, MaxDepth: 2, IncludeHidden: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<p class="caption" role="heading"><span class="caption-text">Guide</span></p>` +
		`<ul class="current">` +
		`<li class="toctree-l1"><a class="reference internal" href="../install.html">Install</a></li>` +
		`<li class="toctree-l1 current"><a class="reference internal" href="../usage.html">Usage</a>` +
		`<ul class="current"><li class="toctree-l2 current"><a class="current reference internal" href="#">CLI</a></li></ul>` +
		`</li></ul>` +
		`<ul><li class="toctree-l1"><a class="reference internal" href="../changelog.html">Changelog</a></li></ul>`
	if out != want {
		t.Errorf("unexpected toctree\n got: %s\nwant: %s", out, want)
	}
}

func TestRender_HiddenExcluded(t *testing.T) {
	out, err := Render(siteTree(), "install", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Changelog") {
		t.Errorf("hidden entry rendered: %s", out)
	}
}

func TestRender_UnlimitedDepthIncludesSections(t *testing.T) {
	out, err := Render(siteTree(), "install", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`<li class="toctree-l3"><a class="reference internal" href="usage/cli.html">CLI</a>`,
		`<li class="toctree-l4"><a class="reference internal" href="usage/cli.html#flags">Flags</a></li>`,
		`<li class="toctree-l4"><a class="reference internal" href="usage/cli/deep.html">Deep</a></li>`,
		`<li class="toctree-l1 current"><a class="current reference internal" href="#">Install</a></li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in\n%s", want, out)
		}
	}
}

func TestRender_Collapse(t *testing.T) {
	out, err := Render(siteTree(), "install", Options{Collapse: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "CLI") {
		t.Errorf("collapsed toctree expanded an entry off the current trail: %s", out)
	}
	if !strings.Contains(out, ">Usage</a></li>") {
		t.Errorf("collapsed entry should still be listed: %s", out)
	}

	out, err = Render(siteTree(), "usage/cli", Options{Collapse: true, TitlesOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ">CLI</a>") {
		t.Errorf("entries on the current trail should stay expanded: %s", out)
	}
}

func TestRender_Outline(t *testing.T) {
	outline := &doctree.DocTree{
		Title: "page",
		Children: []*doctree.DocNode{
			{Title: "Intro", Anchor: "intro", Children: []*doctree.DocNode{
				{Title: "Setup", Anchor: "setup"},
			}},
		},
	}
	out, err := Render(outline, "", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ul><li class="toctree-l1"><a class="reference internal" href="#intro">Intro</a>` +
		`<ul><li class="toctree-l2"><a class="reference internal" href="#setup">Setup</a></li></ul></li></ul>`
	if out != want {
		t.Errorf("unexpected outline\n got: %s\nwant: %s", out, want)
	}
}

func TestRender_Empty(t *testing.T) {
	for _, tree := range []*doctree.DocTree{nil, {Title: "empty"}} {
		out, err := Render(tree, "x", Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected empty output, got %q", out)
		}
	}
}

func TestRender_EscapesTitles(t *testing.T) {
	tree := &doctree.DocTree{Children: []*doctree.DocNode{{Title: "A & <B>", Name: "ab"}}}
	out, err := Render(tree, "", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ">A &amp; &lt;B&gt;</a>") {
		t.Errorf("title not escaped: %s", out)
	}
}

func TestBind(t *testing.T) {
	fn := Bind(siteTree(), "usage")
	out, err := fn(Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "toctree-l2") {
		t.Errorf("max depth 1 rendered a second level: %s", out)
	}
	if !strings.Contains(out, `<a class="current reference internal" href="#">Usage</a>`) {
		t.Errorf("bound page not marked current: %s", out)
	}
}

func TestRelativeURI(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"", "install", "install.html"},
		{"install", "usage/cli", "usage/cli.html"},
		{"usage/cli", "install", "../install.html"},
		{"usage/cli", "usage/flags", "flags.html"},
		{"a/b/c", "a/d", "../d.html"},
	}
	for _, tt := range tests {
		if got := relativeURI(tt.from, tt.to); got != tt.want {
			t.Errorf("relativeURI(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
