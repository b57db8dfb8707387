package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// handleAnnotate annotates a raw toctree fragment sent as the request body.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	out, err := s.annotator.Annotate(string(body))
	if err != nil {
		s.log.Error("annotate failed", "error", err)
		jsonError(w, "annotate: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

func (s *Server) handleAnnotateStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"stats": s.annotator.Stats(),
	})
}
