package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/navtree/internal/doctree"
	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/theme"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestBuild_Snapshot(t *testing.T) {
	b := newBuild(3)
	b.IncrRendered(true)
	b.IncrRendered(false)
	b.AddError("about: boom")

	snap := b.Snapshot()
	if snap.Status != StatusRunning {
		t.Errorf("expected running, got %s", snap.Status)
	}
	p := snap.Progress
	if p.TotalPages != 3 || p.PagesRendered != 2 || p.PagesWritten != 1 || p.PagesUnchanged != 1 {
		t.Errorf("unexpected progress %+v", p)
	}
	if len(p.Errors) != 1 || p.Errors[0] != "about: boom" {
		t.Errorf("unexpected errors %v", p.Errors)
	}

	// Snapshots do not alias internal state.
	p.Errors[0] = "changed"
	if b.Snapshot().Progress.Errors[0] != "about: boom" {
		t.Error("snapshot errors alias the build")
	}
}

func testTree() *doctree.DocTree {
	return &doctree.DocTree{Children: []*doctree.DocNode{
		{Title: "Install", Name: "install"},
		{Title: "Usage", Name: "usage", Children: []*doctree.DocNode{
			{Title: "CLI", Name: "usage/cli"},
		}},
		{Title: "Install again", Name: "install"},
	}}
}

func testBuilder(workers int) *Builder {
	hooks := &theme.Hooks{}
	hooks.Connect(theme.NavigationHook(navtree.New()))
	return NewBuilder(hooks, slog.New(slog.NewTextHandler(io.Discard, nil)), workers)
}

func TestBuilder_Run(t *testing.T) {
	out := t.TempDir()
	build := testBuilder(2).Run(context.Background(), testTree(), out)

	snap := build.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.TotalPages != 3 || snap.Progress.PagesWritten != 3 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}

	data, err := os.ReadFile(filepath.Join(out, "usage", "cli.html"))
	if err != nil {
		t.Fatalf("expected nested output file: %v", err)
	}
	if !strings.Contains(string(data), "current-page") {
		t.Errorf("page navigation not annotated: %s", data)
	}
}

func TestBuilder_SkipsUnchanged(t *testing.T) {
	out := t.TempDir()
	b := testBuilder(1)
	b.Run(context.Background(), testTree(), out)

	snap := b.Run(context.Background(), testTree(), out).Snapshot()
	if snap.Progress.PagesWritten != 0 || snap.Progress.PagesUnchanged != 3 {
		t.Errorf("expected all pages unchanged, got %+v", snap.Progress)
	}
}

func TestBuilder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := testBuilder(4).Run(ctx, testTree(), t.TempDir()).Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) != 1 || !strings.Contains(snap.Progress.Errors[0], "cancelled") {
		t.Errorf("unexpected errors %v", snap.Progress.Errors)
	}
}

func TestBuilder_RejectsPagesOutsideOutDir(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "site", "out")
	tree := &doctree.DocTree{Children: []*doctree.DocNode{
		{Title: "Home", Name: "index"},
		{Title: "Evil", Name: "../../escaped"},
	}}

	snap := testBuilder(2).Run(context.Background(), tree, out).Snapshot()
	if snap.Status != StatusPartial {
		t.Errorf("expected partial, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) != 1 || !strings.Contains(snap.Progress.Errors[0], "outside") {
		t.Errorf("unexpected errors %v", snap.Progress.Errors)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.html")); !os.IsNotExist(err) {
		t.Errorf("page escaped the output dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Errorf("expected index.html: %v", err)
	}
}

func TestBuilder_NavIndexDropsEscapingLinks(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "site", "out")
	tree, err := (&parser.NavIndexParser{}).Parse(strings.NewReader("- [Home](index.md)\n- [Evil](../../escaped.md)\n"), "nav.md")
	if err != nil {
		t.Fatal(err)
	}

	snap := testBuilder(1).Run(context.Background(), tree, out).Snapshot()
	if snap.Status != StatusCompleted || snap.Progress.TotalPages != 1 {
		t.Errorf("expected one completed page, got %s %+v", snap.Status, snap.Progress)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.html")); !os.IsNotExist(err) {
		t.Errorf("page escaped the output dir: %v", err)
	}
}
