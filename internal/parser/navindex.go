package parser

import (
	"io"
	"path"
	"strings"

	"github.com/dgallion1/navtree/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// NavIndexParser reads a markdown navigation index. Headings open captions,
// list items holding a link become pages and nested lists become their
// children. A link titled "hidden" marks a hidden entry:
//
//	# User Guide
//	- [Install](install.md)
//	- [Usage](usage/index.md)
//	  - [CLI](usage/cli.md)
//	- [Changelog](changelog.md "hidden")
type NavIndexParser struct{}

func (p *NavIndexParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".md", ".markdown"),
	}

	var caption *doctree.DocNode
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			caption = &doctree.DocNode{Title: strings.TrimSpace(string(node.Text(src)))}
			tree.Children = append(tree.Children, caption)
		case *ast.List:
			entries := listEntries(node, src)
			if caption != nil {
				caption.Children = append(caption.Children, entries...)
			} else {
				tree.Children = append(tree.Children, entries...)
			}
		}
	}

	return tree, nil
}

// listEntries converts list items to pages. Items without a usable link
// contribute their nested entries to the enclosing level.
func listEntries(list *ast.List, src []byte) []*doctree.DocNode {
	var out []*doctree.DocNode
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var entry *doctree.DocNode
		var nested []*doctree.DocNode
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listEntries(sub, src)...)
				continue
			}
			if entry == nil {
				entry = linkEntry(c, src)
			}
		}
		if entry == nil {
			out = append(out, nested...)
			continue
		}
		entry.Children = nested
		out = append(out, entry)
	}
	return out
}

func linkEntry(block ast.Node, src []byte) *doctree.DocNode {
	var link *ast.Link
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.Link); ok && entering {
			link = l
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if link == nil {
		return nil
	}

	name := Docname(string(link.Destination))
	if name == "" {
		return nil
	}
	title := strings.TrimSpace(string(link.Text(src)))
	if title == "" {
		title = name
	}
	return &doctree.DocNode{
		Title:  title,
		Name:   name,
		Hidden: strings.EqualFold(string(link.Title), "hidden"),
	}
}

// Docname strips a link destination down to a page name: no fragment, no
// leading "./" or "/", no source or output extension. External links and
// bare fragments have no docname, nor do paths that climb above the index.
func Docname(dest string) string {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return ""
	}
	dest, _, _ = strings.Cut(dest, "#")
	dest = strings.TrimPrefix(dest, "./")
	dest = strings.TrimPrefix(dest, "/")
	if dest == "" {
		return ""
	}
	dest = path.Clean(dest)
	if dest == "." || dest == ".." || strings.HasPrefix(dest, "../") {
		return ""
	}
	lower := strings.ToLower(dest)
	for _, ext := range []string{".markdown", ".md", ".html", ".htm", ".rst"} {
		if strings.HasSuffix(lower, ext) {
			return dest[:len(dest)-len(ext)]
		}
	}
	return dest
}
