package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/theme"
)

// handleToctree renders the sidebar navigation for one page of a site
// described by an uploaded markdown navigation index.
func (s *Server) handleToctree(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.parseUpload(w, r, "index")
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		uploadError(w, err, s.cfg.MaxUploadBytes)
		return
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".md", ".markdown":
	default:
		jsonError(w, fmt.Sprintf("unsupported index type: %s", ext), http.StatusUnsupportedMediaType)
		return
	}

	tree, err := (&parser.NavIndexParser{}).Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse index: "+err.Error(), http.StatusBadRequest)
		return
	}

	page := r.FormValue("page")
	if page != "" && tree.Find(page) == nil {
		jsonError(w, fmt.Sprintf("page %q is not in the index", page), http.StatusNotFound)
		return
	}

	nav, err := s.hooks.PageNavigation(tree, page)
	if err != nil {
		s.log.Error("page navigation failed", "page", page, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"page":                  page,
		theme.NavigationTreeKey: nav,
	})
}
