package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_Outline(t *testing.T) {
	input := `<!DOCTYPE html>
<html><head><title>Reference Manual</title></head>
<body>
<nav><h2>Site navigation</h2></nav>
<h1 id="top">Reference</h1>
<p>Intro.</p>
<h2>Getting   <em>Started</em></h2>
<h3>Install</h3>
<h2>Getting Started</h2>
</body></html>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "ref.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Reference Manual" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level heading (nav skipped), got %d", len(tree.Children))
	}

	top := tree.Children[0]
	if top.Anchor != "top" {
		t.Errorf("expected id attribute as anchor, got %q", top.Anchor)
	}
	if len(top.Children) != 2 {
		t.Fatalf("expected 2 h2 entries, got %d", len(top.Children))
	}
	first, second := top.Children[0], top.Children[1]
	if first.Title != "Getting Started" || first.Anchor != "getting-started" {
		t.Errorf("unexpected first h2 %+v", first)
	}
	if second.Anchor != "getting-started-1" {
		t.Errorf("expected de-duplicated anchor, got %q", second.Anchor)
	}
	if len(first.Children) != 1 || first.Children[0].Title != "Install" {
		t.Errorf("expected Install under first h2, got %+v", first.Children)
	}
}

func TestHTMLParser_FallbackTitle(t *testing.T) {
	tree, err := (&HTMLParser{}).Parse(strings.NewReader("<p>no headings</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", tree.Title)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no entries, got %d", len(tree.Children))
	}
}
