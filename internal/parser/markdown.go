package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/navtree/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser builds a page outline from markdown headings. Anchors match
// the ids goldmark assigns when rendering the same page.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithParserOptions(gmparser.WithAutoHeadingID()))
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".md", ".markdown"),
	}
	titled := false

	o := newOutline()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(heading.Text(src)))
		if heading.Level == 1 && !titled && title != "" {
			tree.Title = title
			titled = true
		}
		o.add(title, headingID(heading), heading.Level, 0)
	}

	tree.Children = o.children()
	return tree, nil
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}
