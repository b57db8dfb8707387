package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Getting Started

Intro text.

## Install Guide

Section content.

### From Source

More content.

## Usage

Usage content.
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "start.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "Getting Started" {
		t.Errorf("expected title %q, got %q", "Getting Started", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Anchor != "getting-started" {
		t.Errorf("expected anchor %q, got %q", "getting-started", h1.Anchor)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	install := h1.Children[0]
	if install.Title != "Install Guide" || install.Anchor != "install-guide" {
		t.Errorf("unexpected h2 %+v", install)
	}
	if len(install.Children) != 1 || install.Children[0].Title != "From Source" {
		t.Fatalf("expected From Source under Install Guide, got %+v", install.Children)
	}
	if h1.Children[1].Title != "Usage" {
		t.Errorf("expected %q, got %q", "Usage", h1.Children[1].Title)
	}
	if h1.IsPage() || !h1.IsSection() {
		t.Errorf("outline entry %q should be a section", h1.Title)
	}
}

func TestMarkdownParser_DuplicateHeadingsGetUniqueAnchors(t *testing.T) {
	input := "## Example\n\ntext\n\n## Example\n"
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "dup.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tree.Children))
	}
	if tree.Children[0].Anchor == tree.Children[1].Anchor {
		t.Errorf("duplicate anchors %q", tree.Children[0].Anchor)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader("Just some plain text."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no outline entries, got %d", len(tree.Children))
	}
	if tree.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", tree.Title)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"docs/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
