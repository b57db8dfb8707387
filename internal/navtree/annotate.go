package navtree

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	checkboxPrefix   = "toctree-checkbox-"
	toggleLabelText  = "Toggle child pages in navigation"
	DefaultCacheSize = 256
)

// Annotator adds CSS-only collapse toggles and the current-page marker to
// toctree fragments. Results are memoized per exact input string in a
// bounded LRU owned by the Annotator.
type Annotator struct {
	backend   Backend
	cache     *lru.Cache[string, string]
	cacheSize int
	stats     *Stats
	log       *slog.Logger
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithCacheSize bounds the memo cache. Zero or negative disables caching.
func WithCacheSize(n int) Option {
	return func(a *Annotator) { a.cacheSize = n }
}

// WithBackend swaps the HTML tree implementation.
func WithBackend(b Backend) Option {
	return func(a *Annotator) { a.backend = b }
}

func WithLogger(log *slog.Logger) Option {
	return func(a *Annotator) { a.log = log }
}

// WithStatsWindow sets how long latency samples are kept.
func WithStatsWindow(d time.Duration) Option {
	return func(a *Annotator) { a.stats = NewStats(d) }
}

func New(opts ...Option) *Annotator {
	a := &Annotator{
		backend:   HTMLBackend{},
		cacheSize: DefaultCacheSize,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.stats == nil {
		a.stats = NewStats(time.Hour)
	}
	if a.cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		a.cache, _ = lru.New[string, string](a.cacheSize)
	}
	return a
}

// Annotate returns fragment with every list item that owns a nested list
// turned into a collapsible entry. Empty input is returned as is.
func (a *Annotator) Annotate(fragment string) (string, error) {
	if fragment == "" {
		return fragment, nil
	}
	if a.cache != nil {
		if out, ok := a.cache.Get(fragment); ok {
			a.stats.Hit()
			return out, nil
		}
	}

	start := time.Now()
	out, err := annotate(a.backend, fragment)
	if err != nil {
		return "", err
	}
	elapsed := time.Since(start)
	a.stats.Record(elapsed)
	if a.cache != nil {
		a.cache.Add(fragment, out)
	}
	a.log.Debug("annotated navigation tree",
		"input_bytes", len(fragment),
		"output_bytes", len(out),
		"duration_us", elapsed.Microseconds(),
	)
	return out, nil
}

// Stats returns latency and cache counters.
func (a *Annotator) Stats() StatsSnapshot {
	snap := a.stats.Snapshot()
	if a.cache != nil {
		snap.CacheEntries = a.cache.Len()
	}
	snap.CacheCapacity = max(a.cacheSize, 0)
	return snap
}

// Purge drops every memoized result.
func (a *Annotator) Purge() {
	if a.cache != nil {
		a.cache.Purge()
	}
}

func annotate(b Backend, fragment string) (string, error) {
	doc, err := b.Parse(fragment)
	if err != nil {
		return "", err
	}

	items := listItems(doc.Roots())
	selected := lastCurrent(items)

	count := 0
	for _, li := range items {
		if !hasDescendant(li, "ul") {
			continue
		}
		classes := classList(li)
		setClassList(li, append(classes, "has-children"))

		count++
		id := fmt.Sprintf("%s%d", checkboxPrefix, count)
		insertAfterLead(li,
			newCheckbox(doc, id, contains(classes, "current")),
			newToggleLabel(doc, id),
		)
	}

	if selected >= 0 {
		li := items[selected]
		setClassList(li, append(classList(li), "current-page"))
	}

	return doc.Render()
}

// listItems collects every <li> in document order.
func listItems(roots []Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		if n.Tag() == "li" {
			out = append(out, n)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// lastCurrent folds over items and returns the index of the last one marked
// current, or -1. The deepest entry of the current trail comes last in
// document order.
func lastCurrent(items []Node) int {
	selected := -1
	for i, li := range items {
		if contains(classList(li), "current") {
			selected = i
		}
	}
	return selected
}

func hasDescendant(n Node, tag string) bool {
	for _, c := range n.Children() {
		if c.Tag() == tag || hasDescendant(c, tag) {
			return true
		}
	}
	return false
}

// insertAfterLead places nodes, in order, right after the item's first child
// (normally its link).
func insertAfterLead(li Node, nodes ...Node) {
	pos := min(1, len(li.Children()))
	for i, n := range nodes {
		li.InsertChild(pos+i, n)
	}
}

func newCheckbox(doc Document, id string, checked bool) Node {
	attrs := []Attribute{
		{"type", "checkbox"},
		{"class", "toctree-checkbox"},
		{"id", id},
		{"name", id},
		{"role", "switch"},
	}
	if checked {
		attrs = append(attrs, Attribute{"checked", ""})
	}
	return doc.NewElement("input", attrs...)
}

func newToggleLabel(doc Document, id string) Node {
	label := doc.NewElement("label", Attribute{"for", id})
	hidden := doc.NewElement("div", Attribute{"class", "visually-hidden"})
	hidden.AppendChild(doc.NewText(toggleLabelText))
	label.AppendChild(hidden)
	label.AppendChild(ExpandIcon(doc))
	return label
}

func classList(n Node) []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

func setClassList(n Node, classes []string) {
	n.SetAttr("class", strings.Join(classes, " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
