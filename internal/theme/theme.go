package theme

import (
	"fmt"

	"github.com/dgallion1/navtree/internal/doctree"
	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/toctree"
)

// Context keys shared with page templates.
const (
	PageNameKey       = "pagename"
	ToctreeKey        = "toctree"
	NavigationTreeKey = "custom_furo_navigation_tree"
)

// NavigationOptions are the fixed toctree arguments used for the sidebar.
var NavigationOptions = toctree.Options{
	Collapse:      false,
	TitlesOnly:    true,
	MaxDepth:      2,
	IncludeHidden: true,
}

// Context is the mutable per-page template context.
type Context map[string]any

// ToctreeFunc renders the site toctree for the page being built.
type ToctreeFunc func(opts toctree.Options) (string, error)

// PageContextFunc is called once per rendered page, before its template runs.
type PageContextFunc func(app any, pagename, templatename string, ctx Context, doc any) error

// NewContext returns a page context whose toctree callable renders tree for
// pagename.
func NewContext(tree *doctree.DocTree, pagename string) Context {
	return Context{
		PageNameKey: pagename,
		ToctreeKey:  ToctreeFunc(toctree.Bind(tree, pagename)),
	}
}

// NavigationHook stores the annotated sidebar tree under NavigationTreeKey.
// Pages without a toctree entry get an empty tree; an entry that is not a
// toctree function fails the page.
func NavigationHook(a *navtree.Annotator) PageContextFunc {
	return func(_ any, _, _ string, ctx Context, _ any) error {
		fragment, err := navigationFragment(ctx)
		if err != nil {
			return err
		}
		out, err := a.Annotate(fragment)
		if err != nil {
			return fmt.Errorf("annotate navigation: %w", err)
		}
		ctx[NavigationTreeKey] = out
		return nil
	}
}

func navigationFragment(ctx Context) (string, error) {
	raw, ok := ctx[ToctreeKey]
	if !ok || raw == nil {
		return "", nil
	}
	var fn ToctreeFunc
	switch v := raw.(type) {
	case ToctreeFunc:
		fn = v
	case func(toctree.Options) (string, error):
		fn = v
	default:
		return "", fmt.Errorf("%s is %T, not a toctree function", ToctreeKey, raw)
	}
	if fn == nil {
		return "", fmt.Errorf("%s function is nil", ToctreeKey)
	}
	out, err := fn(NavigationOptions)
	if err != nil {
		return "", fmt.Errorf("render toctree: %w", err)
	}
	return out, nil
}

// Hooks is an ordered list of page-context callbacks.
type Hooks struct {
	fns []PageContextFunc
}

// Connect registers fn to run after every previously connected callback.
func (h *Hooks) Connect(fn PageContextFunc) {
	h.fns = append(h.fns, fn)
}

// Emit runs every callback in order and stops at the first error.
func (h *Hooks) Emit(app any, pagename, templatename string, ctx Context, doc any) error {
	for _, fn := range h.fns {
		if err := fn(app, pagename, templatename, ctx, doc); err != nil {
			return fmt.Errorf("page %s: %w", pagename, err)
		}
	}
	return nil
}

// PageNavigation builds the context for pagename, runs the hooks and returns
// the annotated sidebar tree.
func (h *Hooks) PageNavigation(tree *doctree.DocTree, pagename string) (string, error) {
	ctx := NewContext(tree, pagename)
	if err := h.Emit(nil, pagename, "page.html", ctx, nil); err != nil {
		return "", err
	}
	out, _ := ctx[NavigationTreeKey].(string)
	return out, nil
}
