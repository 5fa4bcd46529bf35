package webapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/aepx/diff"
	"github.com/tsawler/aepx/model"
)

func newTestServer(cfg Config) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, cfg)
}

// writeProject lays out a minimal project referencing one real and one
// missing asset, and returns the project file path.
func writeProject(t *testing.T, dir string) string {
	t.Helper()

	clip := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(clip, []byte("mov-data"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content := `<?xml version="1.0" encoding="utf-8"?>
<Project>
	<fileReference fullpath="clip.mov"/>
	<fullpath>gone.png</fullpath>
</Project>`

	project := filepath.Join(dir, "promo.aepx")
	if err := os.WriteFile(project, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return project
}

func postJSON(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want health status", rec.Body.String())
	}
}

func TestScan(t *testing.T) {
	srv := newTestServer(Config{})
	project := writeProject(t, t.TempDir())

	rec := postJSON(t, srv, "/api/scan", `{"path": "`+project+`"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var rep model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if rep.ProjectFile != project {
		t.Errorf("ProjectFile = %q, want %q", rep.ProjectFile, project)
	}
	if len(rep.Assets) != 1 || rep.Assets[0].Filename != "clip.mov" {
		t.Errorf("Assets = %+v, want clip.mov", rep.Assets)
	}
	if len(rep.MissingAssets) != 1 {
		t.Errorf("MissingAssets = %v, want one entry", rep.MissingAssets)
	}
}

func TestScanValidation(t *testing.T) {
	srv := newTestServer(Config{})
	dir := t.TempDir()

	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("hi"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{"path": `, http.StatusBadRequest},
		{"empty path", `{"path": ""}`, http.StatusBadRequest},
		{"missing file", `{"path": "` + filepath.Join(dir, "nope.aepx") + `"}`, http.StatusNotFound},
		{"wrong extension", `{"path": "` + textFile + `"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv, "/api/scan", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var envelope map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decoding error envelope: %v", err)
			}
			if envelope["error"] == "" {
				t.Error("error envelope should carry a message")
			}
		})
	}
}

func TestScanMalformedProjectSoftFails(t *testing.T) {
	srv := newTestServer(Config{})
	dir := t.TempDir()

	project := filepath.Join(dir, "broken.aepx")
	if err := os.WriteFile(project, []byte("<Project><unclosed>"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rec := postJSON(t, srv, "/api/scan", `{"path": "`+project+`"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var rep model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(rep.Assets) != 0 || len(rep.MissingAssets) != 0 {
		t.Errorf("unparseable project should yield an empty report, got %+v", rep)
	}
}

func TestDiff(t *testing.T) {
	srv := newTestServer(Config{})
	previous := writeProject(t, t.TempDir())

	curDir := t.TempDir()
	current := writeProject(t, curDir)
	if err := os.WriteFile(filepath.Join(curDir, "extra.wav"), []byte("wav"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	content := `<Project>
	<fileReference fullpath="clip.mov"/>
	<fileReference fullpath="extra.wav"/>
</Project>`
	if err := os.WriteFile(current, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rec := postJSON(t, srv, "/api/diff", `{"previous": "`+previous+`", "current": "`+current+`"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res diff.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.NewAssets != 1 {
		t.Errorf("NewAssets = %d, want 1", res.NewAssets)
	}
	if res.PresentAssets != 2 {
		t.Errorf("PresentAssets = %d, want 2", res.PresentAssets)
	}
}

func TestDiffValidation(t *testing.T) {
	srv := newTestServer(Config{})
	project := writeProject(t, t.TempDir())

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"missing previous", `{"current": "` + project + `"}`, http.StatusBadRequest},
		{"missing current", `{"previous": "` + project + `"}`, http.StatusBadRequest},
		{"previous not found", `{"previous": "/nope.aepx", "current": "` + project + `"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv, "/api/diff", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(Config{RatePerSecond: 0.001, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rate limit") {
		t.Errorf("body = %q, want rate limit message", rec.Body.String())
	}
}

func TestScanRejectsGet(t *testing.T) {
	srv := newTestServer(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
