package navtree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLBackend parses fragments with golang.org/x/net/html. Malformed markup
// is repaired the way browsers do it, never rejected.
type HTMLBackend struct{}

func (HTMLBackend) Parse(fragment string) (Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return &htmlDocument{roots: nodes}, nil
}

type htmlDocument struct {
	roots []*html.Node
}

func (d *htmlDocument) Roots() []Node {
	out := make([]Node, len(d.roots))
	for i, n := range d.roots {
		out[i] = htmlNode{n}
	}
	return out
}

func (d *htmlDocument) NewElement(tag string, attrs ...Attribute) Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	return htmlNode{n}
}

func (d *htmlDocument) NewText(text string) Node {
	return htmlNode{&html.Node{Type: html.TextNode, Data: text}}
}

func (d *htmlDocument) Render() (string, error) {
	var buf strings.Builder
	for _, n := range d.roots {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render fragment: %w", err)
		}
	}
	return buf.String(), nil
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Attr(key string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) SetAttr(key, val string) {
	for i, a := range h.n.Attr {
		if a.Namespace == "" && a.Key == key {
			h.n.Attr[i].Val = val
			return
		}
	}
	h.n.Attr = append(h.n.Attr, html.Attribute{Key: key, Val: val})
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlNode{c})
	}
	return out
}

func (h htmlNode) InsertChild(i int, child Node) {
	ref := h.n.FirstChild
	for ; ref != nil && i > 0; i-- {
		ref = ref.NextSibling
	}
	h.n.InsertBefore(unwrap(child), ref)
}

func (h htmlNode) AppendChild(child Node) {
	h.n.AppendChild(unwrap(child))
}

func unwrap(n Node) *html.Node {
	hn, ok := n.(htmlNode)
	if !ok {
		panic(fmt.Sprintf("navtree: foreign node %T attached to html document", n))
	}
	return hn.n
}
