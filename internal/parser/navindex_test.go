package parser

import (
	"strings"
	"testing"
)

func TestNavIndexParser_CaptionsAndNesting(t *testing.T) {
	input := `# User Guide

- [Install](install.md)
- [Usage](./usage/index.md)
  - [CLI](usage/cli.md)
  - [API](usage/api.html#top)

# Project

- [Changelog](changelog.md "hidden")
- [Website](https://example.com)
`
	tree, err := (&NavIndexParser{}).Parse(strings.NewReader(input), "nav.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "nav" {
		t.Errorf("expected title %q, got %q", "nav", tree.Title)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(tree.Children))
	}

	guide := tree.Children[0]
	if guide.Title != "User Guide" || !guide.IsCaption() {
		t.Fatalf("unexpected caption %+v", guide)
	}
	if len(guide.Children) != 2 {
		t.Fatalf("expected 2 guide entries, got %d", len(guide.Children))
	}
	usage := guide.Children[1]
	if usage.Name != "usage/index" || usage.Title != "Usage" {
		t.Errorf("unexpected usage entry %+v", usage)
	}
	if len(usage.Children) != 2 {
		t.Fatalf("expected 2 usage children, got %d", len(usage.Children))
	}
	if usage.Children[1].Name != "usage/api" {
		t.Errorf("expected docname usage/api, got %q", usage.Children[1].Name)
	}

	project := tree.Children[1]
	if len(project.Children) != 1 {
		t.Fatalf("external link should be skipped, got %d entries", len(project.Children))
	}
	if !project.Children[0].Hidden || project.Children[0].Name != "changelog" {
		t.Errorf("expected hidden changelog, got %+v", project.Children[0])
	}
}

func TestNavIndexParser_NoCaption(t *testing.T) {
	input := "- [A](a.md)\n- Plain group\n  - [B](b.md)\n"
	tree, err := (&NavIndexParser{}).Parse(strings.NewReader(input), "nav.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.Join(tree.Pages(), ",")
	if got != "a,b" {
		t.Errorf("expected pages a,b, got %q", got)
	}
	if len(tree.Children) != 2 {
		t.Errorf("link-less item should hoist its children, got %d top-level entries", len(tree.Children))
	}
}

func TestNavIndexParser_Empty(t *testing.T) {
	tree, err := (&NavIndexParser{}).Parse(strings.NewReader(""), "nav.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected empty tree, got %d entries", len(tree.Children))
	}
}

func TestDocname(t *testing.T) {
	tests := []struct {
		dest, want string
	}{
		{"install.md", "install"},
		{"./usage/cli.md", "usage/cli"},
		{"/abs/page.html", "abs/page"},
		{"page.rst#section", "page"},
		{"plain", "plain"},
		{"#local", ""},
		{"https://example.com/x.md", ""},
		{"mailto:a@b.c", ""},
		{"", ""},
		{"usage/./cli.md", "usage/cli"},
		{"../../escaped.md", ""},
		{"usage/../../escaped.md", ""},
		{"..", ""},
		{"./", ""},
	}
	for _, tt := range tests {
		if got := Docname(tt.dest); got != tt.want {
			t.Errorf("Docname(%q) = %q, want %q", tt.dest, got, tt.want)
		}
	}
}
