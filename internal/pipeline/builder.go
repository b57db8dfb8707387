package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/navtree/internal/doctree"
	"github.com/dgallion1/navtree/internal/theme"
)

// Builder renders the sidebar navigation of every page in a site and writes
// each one to <out>/<docname>.html.
type Builder struct {
	hooks   *theme.Hooks
	log     *slog.Logger
	workers int
}

func NewBuilder(hooks *theme.Hooks, log *slog.Logger, workers int) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{hooks: hooks, log: log, workers: workers}
}

// Run builds every page of tree with bounded concurrency. Files whose
// content is already current are left untouched. Cancelling ctx stops
// scheduling new pages.
func (b *Builder) Run(ctx context.Context, tree *doctree.DocTree, outDir string) *Build {
	pages := uniquePages(tree)
	build := newBuild(len(pages))
	b.log.Info("site build started", "pages", len(pages), "workers", b.workers, "out", outDir)

	type pageResult struct {
		name    string
		written bool
		err     error
	}
	results := make(chan pageResult, len(pages))
	sem := make(chan struct{}, b.workers)

	scheduled := 0
schedule:
	for _, page := range pages {
		if ctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break schedule
		}
		scheduled++
		go func(name string) {
			defer func() { <-sem }()
			written, err := b.page(tree, name, outDir)
			results <- pageResult{name: name, written: written, err: err}
		}(page)
	}

	hadErrors := false
	for range scheduled {
		r := <-results
		if r.err != nil {
			b.log.Error("page build failed", "page", r.name, "error", r.err)
			build.AddError(fmt.Sprintf("%s: %s", r.name, r.err))
			hadErrors = true
			continue
		}
		build.IncrRendered(r.written)
	}
	if scheduled < len(pages) {
		build.AddError(fmt.Sprintf("cancelled after %d of %d pages: %s", scheduled, len(pages), ctx.Err()))
		hadErrors = true
	}

	snap := build.Snapshot()
	switch {
	case !hadErrors:
		build.SetStatus(StatusCompleted)
	case snap.Progress.PagesRendered > 0:
		build.SetStatus(StatusPartial)
	default:
		build.SetStatus(StatusFailed)
	}

	b.log.Info("site build finished",
		"rendered", snap.Progress.PagesRendered,
		"written", snap.Progress.PagesWritten,
		"unchanged", snap.Progress.PagesUnchanged,
		"errors", len(snap.Progress.Errors),
	)
	return build
}

// page renders one page's navigation and writes it unless the existing file
// already has the same content.
func (b *Builder) page(tree *doctree.DocTree, name, outDir string) (bool, error) {
	nav, err := b.hooks.PageNavigation(tree, name)
	if err != nil {
		return false, err
	}

	path := filepath.Join(outDir, filepath.FromSlash(name)+".html")
	rel, err := filepath.Rel(outDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return false, fmt.Errorf("page %q resolves outside %s", name, outDir)
	}
	data := []byte(nav)
	if existing, err := os.ReadFile(path); err == nil && ContentHashHex(existing) == ContentHashHex(data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// uniquePages lists each docname once, in tree order.
func uniquePages(tree *doctree.DocTree) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range tree.Pages() {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
