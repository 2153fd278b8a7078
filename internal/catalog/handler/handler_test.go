package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"udyam/internal/catalog/service"
	"udyam/internal/catalog/store"
)

func newCatalogRouter(t *testing.T) http.Handler {
	t.Helper()
	catalog := store.NewInMemory()
	if err := store.Seed(t.Context(), catalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(service.New(catalog), logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestResolveRequirements(t *testing.T) {
	router := newCatalogRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/requirements/ayurveda/clinic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Sector          string `json:"sector"`
		ApplicationType string `json:"application_type"`
		TotalRequired   int    `json:"total_required"`
		Requirements    []struct {
			DocCategory string `json:"doc_category"`
			Required    bool   `json:"required"`
		} `json:"requirements"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Sector != "ayurveda" || resp.ApplicationType != "clinic" {
		t.Fatalf("unexpected pair in response: %s/%s", resp.Sector, resp.ApplicationType)
	}
	if len(resp.Requirements) == 0 || resp.TotalRequired == 0 {
		t.Fatalf("expected a non-empty checklist, got %+v", resp)
	}
	if resp.TotalRequired >= len(resp.Requirements) {
		t.Fatalf("expected optional requirements to be excluded from total_required")
	}
}

func TestResolveUnknownPair(t *testing.T) {
	router := newCatalogRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/requirements/ayurveda/wholesale", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "not_found" {
		t.Fatalf("expected not_found, got %q", resp.Error)
	}
	if resp.ErrorDescription != "no document requirements found for ayurveda (wholesale)" {
		t.Fatalf("unexpected description: %q", resp.ErrorDescription)
	}
}

func TestCommonRequirements(t *testing.T) {
	router := newCatalogRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/requirements/yoga/clinic/common", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Requirements []struct {
			DocCategory string `json:"doc_category"`
		} `json:"requirements"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Requirements) == 0 {
		t.Fatalf("expected common requirements")
	}
	for _, r := range resp.Requirements {
		if !store.CommonCategories[r.DocCategory] {
			t.Fatalf("unexpected sector-specific category %q in common subset", r.DocCategory)
		}
	}
}
