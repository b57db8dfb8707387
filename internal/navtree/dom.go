package navtree

// Node is the element surface the annotator reads and mutates. Text and
// comment nodes report an empty Tag.
type Node interface {
	Tag() string
	Attr(key string) (string, bool)
	SetAttr(key, val string)
	Children() []Node
	// InsertChild places child before the node currently at index i.
	// An index at or past the end appends.
	InsertChild(i int, child Node)
	AppendChild(child Node)
}

// Attribute is a single key/value pair on a new element.
type Attribute struct {
	Key string
	Val string
}

// Document is one parsed fragment. Nodes created by a Document may only be
// attached to nodes of the same Document.
type Document interface {
	Roots() []Node
	NewElement(tag string, attrs ...Attribute) Node
	NewText(text string) Node
	Render() (string, error)
}

// Backend turns fragment text into a Document.
type Backend interface {
	Parse(fragment string) (Document, error)
}
