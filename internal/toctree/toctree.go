package toctree

import (
	"fmt"
	"strings"

	"github.com/dgallion1/navtree/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options mirror the arguments a Sphinx theme passes to its toctree callable.
type Options struct {
	Collapse      bool // Expand only entries on the current trail
	TitlesOnly    bool // Drop in-page section entries
	MaxDepth      int  // Deepest entry level rendered; <= 0 is unlimited
	IncludeHidden bool // Render entries marked hidden
}

// Render produces toctree HTML for tree as seen from the page named current.
// Entries on the path to current carry the "current" class. An empty tree
// renders as "".
func Render(tree *doctree.DocTree, current string, opts Options) (string, error) {
	if tree == nil || len(tree.Children) == 0 {
		return "", nil
	}

	r := &renderer{opts: opts, current: current, trail: make(map[*doctree.DocNode]bool)}
	for _, n := range tree.Trail(current) {
		r.trail[n] = true
	}

	var roots []*html.Node
	var pending *html.Node
	for _, n := range tree.Children {
		if !r.visible(n) {
			continue
		}
		if n.IsCaption() {
			pending = nil
			roots = append(roots, caption(n.Title))
			if ul := r.list(n.Children, 1, ""); ul != nil {
				roots = append(roots, ul)
			}
			continue
		}
		if pending == nil {
			pending = element(atom.Ul)
			roots = append(roots, pending)
		}
		pending.AppendChild(r.item(n, 1, ""))
		if r.trail[n] {
			setAttr(pending, "class", "current")
		}
	}

	var buf strings.Builder
	for _, n := range roots {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render toctree: %w", err)
		}
	}
	return buf.String(), nil
}

// Bind returns a callable rendering tree for the page named current.
func Bind(tree *doctree.DocTree, current string) func(Options) (string, error) {
	return func(opts Options) (string, error) {
		return Render(tree, current, opts)
	}
}

type renderer struct {
	opts    Options
	current string
	trail   map[*doctree.DocNode]bool
}

func (r *renderer) visible(n *doctree.DocNode) bool {
	if n.Hidden && !r.opts.IncludeHidden {
		return false
	}
	if n.IsSection() && r.opts.TitlesOnly {
		return false
	}
	return true
}

// list renders the visible nodes at depth, or nil when none remain. page is
// the docname owning any section anchors among nodes.
func (r *renderer) list(nodes []*doctree.DocNode, depth int, page string) *html.Node {
	if r.opts.MaxDepth > 0 && depth > r.opts.MaxDepth {
		return nil
	}
	var ul *html.Node
	for _, n := range nodes {
		if !r.visible(n) {
			continue
		}
		if ul == nil {
			ul = element(atom.Ul)
		}
		ul.AppendChild(r.item(n, depth, page))
		if r.trail[n] {
			setAttr(ul, "class", "current")
		}
	}
	return ul
}

func (r *renderer) item(n *doctree.DocNode, depth int, page string) *html.Node {
	onTrail := r.trail[n]
	isCurrent := onTrail && n.Name == r.current

	cls := fmt.Sprintf("toctree-l%d", depth)
	if onTrail {
		cls += " current"
	}
	li := element(atom.Li, "class", cls)

	linkCls := "reference internal"
	if isCurrent {
		linkCls = "current " + linkCls
	}
	a := element(atom.A, "class", linkCls, "href", r.href(n, page))
	a.AppendChild(&html.Node{Type: html.TextNode, Data: n.Title})
	li.AppendChild(a)

	if r.opts.Collapse && !onTrail {
		return li
	}
	owner := page
	if n.IsPage() {
		owner = n.Name
	}
	if ul := r.list(n.Children, depth+1, owner); ul != nil {
		li.AppendChild(ul)
	}
	return li
}

func (r *renderer) href(n *doctree.DocNode, page string) string {
	switch {
	case n.IsPage() && n.Name == r.current:
		return "#"
	case n.IsPage():
		return relativeURI(r.current, n.Name)
	case n.Anchor != "" && (page == "" || page == r.current):
		return "#" + n.Anchor
	case n.Anchor != "":
		return relativeURI(r.current, page) + "#" + n.Anchor
	}
	return "#"
}

// relativeURI links docname to from the page named from.
func relativeURI(from, to string) string {
	if from == "" {
		from = "index"
	}
	base := strings.Split(from, "/")
	target := strings.Split(to, "/")
	i := 0
	for i < len(base)-1 && i < len(target)-1 && base[i] == target[i] {
		i++
	}
	return strings.Repeat("../", len(base)-1-i) + strings.Join(target[i:], "/") + ".html"
}

func caption(title string) *html.Node {
	p := element(atom.P, "class", "caption", "role", "heading")
	span := element(atom.Span, "class", "caption-text")
	span.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	p.AppendChild(span)
	return p
}

func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
