package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cardgen/internal/fragment"
	"github.com/dgallion1/cardgen/internal/scrape"
	"github.com/dgallion1/cardgen/internal/segment"
	"github.com/dgallion1/cardgen/internal/sheet"
	"github.com/go-chi/chi/v5"
)

// handleCard fetches a fragment and renders it as a card. Fetch and
// parse failures produce the fallback card, not an error response;
// the component must always have something to show.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	if path == "" {
		jsonError(w, "fragment path is required", http.StatusBadRequest)
		return
	}

	frag, err := s.fragments.Get(r.Context(), path)
	if err != nil {
		msg := "This product is temporarily unavailable."
		if errors.Is(err, fragment.ErrNotFound) {
			msg = "This product could not be found."
		}
		s.log.Warn("card fallback", "path", path, "error", err)
		writeCard(w, s.renderer.Fallback("", msg))
		return
	}

	res := s.segmentNotes(frag.NotesText)
	out, err := s.renderer.Card(frag, res)
	if err != nil {
		s.log.Error("render card", "path", path, "error", err)
		writeCard(w, s.renderer.Fallback(frag.Name, "This product is temporarily unavailable."))
		return
	}
	writeCard(w, out)
}

// segmentNotes segments a fragment's notes. Notes arrive either as a
// rendered HTML snippet or as plain prose; markup is detected by the
// presence of a closing tag.
func (s *Server) segmentNotes(notes string) segment.Result {
	opts := segment.Options{HeadingKeywords: s.cfg.HeadingKeywords}

	if strings.Contains(notes, "</") {
		lines, err := scrape.Lines(strings.NewReader(notes))
		if err == nil {
			return segment.Segment(lines, segment.TaggedElements, opts)
		}
		s.log.Warn("scrape notes failed, falling back to freeform", "error", err)
	}

	var lines []segment.RawLine
	for _, line := range strings.Split(notes, "\n") {
		lines = append(lines, segment.RawLine{Text: line})
	}
	return segment.Segment(lines, segment.FreeformText, opts)
}

// handlePreview renders a card from an uploaded product sheet without
// touching the content API.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !sheet.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	parser, err := sheet.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limited := io.LimitReader(file, s.cfg.MaxUploadBytes+1)
	lines, mode, err := parser.Parse(limited)
	if err != nil {
		s.log.Warn("parse sheet", "filename", filename, "error", err)
		writeCard(w, s.renderer.Fallback(r.FormValue("title"), "This product sheet could not be read."))
		return
	}

	res := segment.Segment(lines, mode, segment.Options{HeadingKeywords: s.cfg.HeadingKeywords})

	frag := &fragment.Fragment{
		Name:        r.FormValue("title"),
		Description: r.FormValue("description"),
		ImageRef:    r.FormValue("image_ref"),
		PromoText:   r.FormValue("promo_text"),
	}
	if frag.Name == "" {
		frag.Name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	out, err := s.renderer.Card(frag, res)
	if err != nil {
		s.log.Error("render preview", "filename", filename, "error", err)
		writeCard(w, s.renderer.Fallback(frag.Name, "This product is temporarily unavailable."))
		return
	}
	writeCard(w, out)
}

// handleFragment returns the raw fragment JSON, mainly for debugging
// card issues against the content API.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	if path == "" {
		jsonError(w, "fragment path is required", http.StatusBadRequest)
		return
	}

	frag, err := s.fragments.Get(r.Context(), path)
	if err != nil {
		if errors.Is(err, fragment.ErrNotFound) {
			jsonError(w, "fragment not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to fetch fragment: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(frag)
}

func writeCard(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
