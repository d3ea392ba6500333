package webapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pmarin/filedex/app"
	"github.com/pmarin/filedex/models"
)

func setupTestWebApp(t *testing.T) (*WebApp, *app.Store) {
	t.Helper()

	store, err := app.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	webapp, err := NewWebApp(store, nil)
	if err != nil {
		t.Fatalf("failed to create webapp: %v", err)
	}
	return webapp, store
}

func seedRecords(t *testing.T, store *app.Store) {
	t.Helper()

	now := time.Now()
	records := []models.FileRecord{
		{Path: "/data/report.pdf", Name: "report.pdf", Ext: "pdf", Size: 2048, ModTime: now},
		{Path: "/data/notes.txt", Name: "notes.txt", Ext: "txt", Size: 10, ModTime: now},
	}
	for _, rec := range records {
		if err := store.UpsertFile(rec); err != nil {
			t.Fatalf("failed to upsert %s: %v", rec.Path, err)
		}
	}
}

func doRequest(t *testing.T, webapp *WebApp, url string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	webapp.GetRouter().ServeHTTP(rr, req)
	return rr
}

func TestAPISearch(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)

	rr := doRequest(t, webapp, "/api/search?q=report")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one hit, got %+v", resp)
	}
	if resp.Results[0].File.Name != "report.pdf" {
		t.Errorf("expected report.pdf, got %s", resp.Results[0].File.Name)
	}
}

func TestAPISearch_MissingQuery(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	rr := doRequest(t, webapp, "/api/search")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp apiError
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON error: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message in body")
	}
}

func TestAPISearch_EmptyResultIsOK(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)

	rr := doRequest(t, webapp, "/api/search?q=zzzzzz")
	if rr.Code != http.StatusOK {
		t.Fatalf("empty result should be 200, got %d", rr.Code)
	}
	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 0 || resp.Results == nil {
		t.Errorf("expected empty results array, got %+v", resp)
	}
}

func TestAPISearch_FilterParams(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)

	rr := doRequest(t, webapp, "/api/search?q=report&ext=txt")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("ext filter should exclude the pdf, got %+v", resp)
	}
}

func TestAPIFile(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)
	store.AddTag("/data/report.pdf", "work")

	rr := doRequest(t, webapp, "/api/file?path=/data/report.pdf")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp fileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.File.Name != "report.pdf" {
		t.Errorf("unexpected file %+v", resp.File)
	}
	if len(resp.Tags) != 1 || resp.Tags[0] != "work" {
		t.Errorf("expected [work], got %v", resp.Tags)
	}
}

func TestAPIFile_NotIndexed(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	rr := doRequest(t, webapp, "/api/file?path=/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAPIStats(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)

	rr := doRequest(t, webapp, "/api/stats")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stats models.IndexStats
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if stats.TotalFiles != 2 {
		t.Errorf("expected 2 files, got %d", stats.TotalFiles)
	}
}

func TestStartPage(t *testing.T) {
	webapp, store := setupTestWebApp(t)
	seedRecords(t, store)

	rr := doRequest(t, webapp, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "filedex") {
		t.Error("expected start page markup")
	}

	rr = doRequest(t, webapp, "/?q=report")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "report.pdf") {
		t.Error("expected search hit rendered on page")
	}
}

func TestNotFoundRoute(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	rr := doRequest(t, webapp, "/no/such/route")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
