package doctree

// DocTree is the root of a page hierarchy: a site's navigation index or the
// heading outline of a single document.
type DocTree struct {
	Title    string     // Index or document title
	Children []*DocNode // Top-level entries
}

// DocNode is one toctree entry.
type DocNode struct {
	Title    string     // Display text
	Name     string     // Docname of a page, e.g. "usage/cli"; empty for sections and captions
	Anchor   string     // Fragment id of a section heading
	Hidden   bool       // Listed only when hidden entries are included
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Nested entries
}

// IsPage reports whether the node links to a page.
func (n *DocNode) IsPage() bool { return n.Name != "" }

// IsSection reports whether the node is a heading within a page.
func (n *DocNode) IsSection() bool { return n.Name == "" && n.Anchor != "" }

// IsCaption reports whether the node only groups its children.
func (n *DocNode) IsCaption() bool { return n.Name == "" && n.Anchor == "" }

// Walk visits nodes depth-first in document order. Depth starts at 1.
// Returning false from fn skips the node's children.
func (t *DocTree) Walk(fn func(n *DocNode, depth int) bool) {
	var walk func(nodes []*DocNode, depth int)
	walk = func(nodes []*DocNode, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.Children, 1)
}

// Find returns the first page named name, or nil.
func (t *DocTree) Find(name string) *DocNode {
	trail := t.Trail(name)
	if len(trail) == 0 {
		return nil
	}
	return trail[len(trail)-1]
}

// Trail returns the chain of nodes from a top-level entry down to the first
// page named name. It is nil when the page is not in the tree.
func (t *DocTree) Trail(name string) []*DocNode {
	if name == "" {
		return nil
	}
	var find func(nodes []*DocNode, path []*DocNode) []*DocNode
	find = func(nodes []*DocNode, path []*DocNode) []*DocNode {
		for _, n := range nodes {
			p := append(path[:len(path):len(path)], n)
			if n.Name == name {
				return p
			}
			if found := find(n.Children, p); found != nil {
				return found
			}
		}
		return nil
	}
	return find(t.Children, nil)
}

// Pages returns the docnames of every page in document order.
func (t *DocTree) Pages() []string {
	var names []string
	t.Walk(func(n *DocNode, _ int) bool {
		if n.IsPage() {
			names = append(names, n.Name)
		}
		return true
	})
	return names
}
