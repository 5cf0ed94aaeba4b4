package api

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/cardgen/internal/config"
	"github.com/dgallion1/cardgen/internal/fragment"
	"github.com/dgallion1/cardgen/internal/render"
)

const testAPIKey = "test-key"

func testConfig() config.Config {
	return config.Config{
		Port:                 "0",
		CardgenAPIKey:        testAPIKey,
		ImageHost:            "https://img.example.com",
		MaxUploadBytes:       1 << 20,
		DescriptionMinLength: 20,
		HeadingKeywords:      []string{"important", "special offer", "rewards"},
		OfferKeywords:        []string{"special offer", "rewards", "promo", "bonus"},
		ImportantKeywords:    []string{"important", "numbers", "fee", "rate"},
	}
}

func newTestServer(t *testing.T, contentAPI *httptest.Server) *Server {
	t.Helper()
	cfg := testConfig()
	var endpoints []string
	if contentAPI != nil {
		endpoints = []string{contentAPI.URL}
	}
	fragments := fragment.NewClient(endpoints, "content-key")
	renderer := render.New(render.RoleConfig{
		OfferKeywords:     cfg.OfferKeywords,
		ImportantKeywords: cfg.ImportantKeywords,
	}, cfg.ImageHost, cfg.DescriptionMinLength)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(fragments, renderer, log, cfg)
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/cards/cards/platinum", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cards/cards/platinum", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	if rec := doRequest(srv, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: expected 401, got %d", rec.Code)
	}
}

func TestHandleCard_FreeformNotes(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "Platinum Card",
			"image_ref": "/cards/platinum.png",
			"promo_text": "Earn 50,000 bonus points",
			"notes_text": "A premium travel rewards card with lounge access.\nSpecial Offer:\nGet 50,000 points\nImportant Information:\nAnnual fee - $175\nRate - 20.99%"
		}`))
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/cards/cards/platinum", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	html := rec.Body.String()
	for _, want := range []string{
		"Platinum Card",
		"https://img.example.com/cards/platinum.png",
		"card__offer",
		"<em>50,000</em>",
		"<td>Annual fee</td><td><em>$175</em></td>",
		"premium travel rewards card",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected card to contain %q, got:\n%s", want, html)
		}
	}
}

func TestHandleCard_HTMLNotes(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "Rewards Card",
			"notes_text": "<h2>Important Information</h2><p>Annual fee - $99</p>"
		}`))
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/cards/cards/rewards", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<td>Annual fee</td><td><em>$99</em></td>") {
		t.Errorf("expected fee table from html notes, got:\n%s", rec.Body.String())
	}
}

func TestHandleCard_FallbackOnMissingFragment(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/cards/cards/ghost", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback must still render, got %d", rec.Code)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "card--fallback") {
		t.Errorf("expected fallback card, got:\n%s", html)
	}
	if !strings.Contains(html, "could not be found") {
		t.Errorf("expected explanatory message, got:\n%s", html)
	}
}

func TestHandleCard_FallbackOnAPIError(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/cards/cards/broken", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback must still render, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "temporarily unavailable") {
		t.Errorf("expected fallback message, got:\n%s", rec.Body.String())
	}
}

func previewRequest(t *testing.T, filename, contents string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, contents); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/cards/preview", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(req)
}

func TestHandlePreview_TextSheet(t *testing.T) {
	srv := newTestServer(t, nil)
	contents := "A card for everyday spending with no surprises.\nFees:\nAnnual fee - $59\n"
	req := previewRequest(t, "lowrate.txt", contents, map[string]string{"title": "Low Rate Card"})

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Low Rate Card") {
		t.Errorf("expected form title on card, got:\n%s", html)
	}
	if !strings.Contains(html, "<td>Annual fee</td><td><em>$59</em></td>") {
		t.Errorf("expected fee row, got:\n%s", html)
	}
}

func TestHandlePreview_MarkdownSheet(t *testing.T) {
	srv := newTestServer(t, nil)
	contents := "## Special Offer\n\nGet 50,000 bonus points.\n"
	req := previewRequest(t, "promo.md", contents, nil)

	rec := doRequest(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	html := rec.Body.String()
	if !strings.Contains(html, "card__offer") {
		t.Errorf("expected offer panel, got:\n%s", html)
	}
	if !strings.Contains(html, "promo") {
		t.Errorf("expected filename-derived title, got:\n%s", html)
	}
}

func TestHandlePreview_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, nil)
	req := previewRequest(t, "sheet.exe", "data", nil)
	rec := doRequest(srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePreview_MissingFile(t *testing.T) {
	srv := newTestServer(t, nil)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "No File")
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/cards/preview", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(srv, authed(req))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleFragment_Passthrough(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Platinum Card","notes_text":"Fees:\nAnnual - $175"}`))
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/fragments/cards/platinum", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Platinum Card"`) {
		t.Errorf("expected fragment json, got:\n%s", rec.Body.String())
	}
}

func TestHandleFragment_NotFound(t *testing.T) {
	contentAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer contentAPI.Close()

	srv := newTestServer(t, contentAPI)
	rec := doRequest(srv, authed(httptest.NewRequest(http.MethodGet, "/api/fragments/cards/ghost", nil)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sheet.txt", "sheet.txt"},
		{"../../etc/passwd", "passwd"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
