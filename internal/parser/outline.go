package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/navtree/internal/doctree"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify turns a heading into a fragment id.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}

// outline nests headings by level, the way a page-local table of contents
// shows them.
type outline struct {
	root    *doctree.DocNode
	stack   []outlineEntry
	anchors map[string]int
}

type outlineEntry struct {
	node  *doctree.DocNode
	level int
}

func newOutline() *outline {
	root := &doctree.DocNode{}
	return &outline{
		root:    root,
		stack:   []outlineEntry{{node: root, level: 0}},
		anchors: make(map[string]int),
	}
}

// add appends a heading below the nearest shallower one. An empty anchor is
// derived from the title and made unique within the outline.
func (o *outline) add(title, anchor string, level, page int) *doctree.DocNode {
	if anchor == "" {
		anchor = o.unique(Slugify(title))
	} else {
		o.anchors[anchor]++
	}
	node := &doctree.DocNode{Title: title, Anchor: anchor, Page: page}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, node)
	o.stack = append(o.stack, outlineEntry{node: node, level: level})
	return node
}

func (o *outline) unique(slug string) string {
	if slug == "" {
		slug = "section"
	}
	n := o.anchors[slug]
	o.anchors[slug]++
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

func (o *outline) children() []*doctree.DocNode {
	return o.root.Children
}
