package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/toctree"
)

// handleOutline builds a collapsible page-local table of contents from an
// uploaded document's headings.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.parseUpload(w, r, "file")
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		uploadError(w, err, s.cfg.MaxUploadBytes)
		return
	}

	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("outline parse failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fragment, err := toctree.Render(tree, "", toctree.Options{})
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	nav, err := s.annotator.Annotate(fragment)
	if err != nil {
		jsonError(w, "annotate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"title":           tree.Title,
		"navigation_tree": nav,
	})
}
