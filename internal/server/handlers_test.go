package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/qosqo/buscador/internal/analyzer"
	"github.com/qosqo/buscador/internal/config"
	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/ranking"
	"github.com/qosqo/buscador/internal/refdata"
	"github.com/qosqo/buscador/internal/search"
	"github.com/qosqo/buscador/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.SQLiteStore) {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	refStore := refdata.NewStore(refdata.DefaultTables(), "")
	cfg := config.Default()
	engine := search.NewEngine(store, analyzer.New(refStore), ranking.NewRanker(&cfg.Scoring), cfg.Search, zap.NewNop())
	return NewServer(engine, store, &cfg.Server, zap.NewNop()), store
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateAndGetListing(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/listings", models.ListingInput{
		Title:    "Se necesita cocinero",
		Category: models.CategoryEmployment,
		Location: models.TextLocation("Wanchaq"),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created["id"] == "" {
		t.Fatal("expected a generated listing id")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/listings/"+created["id"], nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got models.Listing
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "Se necesita cocinero" || !got.IsActive {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestHandleCreateListing_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name  string
		input models.ListingInput
	}{
		{"missing title", models.ListingInput{Category: models.CategoryProducts}},
		{"unknown category", models.ListingInput{Title: "Vendo algo", Category: "mascotas"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/listings", tt.input)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleGetListing_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/listings/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	srv, store := newTestServer(t)

	seed := []*models.Listing{
		{
			ID: "job", Title: "Se necesita cocinero para restaurante",
			Category: models.CategoryEmployment, Location: models.TextLocation("Wanchaq"),
			PublishedAt: time.Now().Add(-time.Hour), IsActive: true,
		},
		{
			ID: "bike", Title: "Vendo bicicleta montañera",
			Category: models.CategoryProducts, Location: models.TextLocation("San Sebastián"),
			PublishedAt: time.Now().Add(-60 * 24 * time.Hour),
		},
	}
	for _, l := range seed {
		if err := store.CreateListing(context.Background(), l); err != nil {
			t.Fatal(err)
		}
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/search", models.SearchQuery{
		Query: "busco trabajo de cocinero en wanchaq",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Results[0].Listing.ID != "job" {
		t.Fatalf("unexpected results: %s", rec.Body.String())
	}
	if resp.Intent == nil || resp.Intent.PrimaryCategory != models.CategoryEmployment {
		t.Errorf("intent missing or wrong: %+v", resp.Intent)
	}
	if resp.Error != "" {
		t.Errorf("unexpected degradation marker: %q", resp.Error)
	}
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyze(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", models.SearchQuery{
		Query: "Departamento en alquiler Cusco S/ 800 a 1,200",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var intent models.QueryIntent
	if err := json.Unmarshal(rec.Body.Bytes(), &intent); err != nil {
		t.Fatal(err)
	}
	if intent.PrimaryCategory != models.CategoryRealEstate || intent.Location != "Cusco" {
		t.Errorf("intent = %+v", intent)
	}
	if intent.Filters.PriceMin == nil || *intent.Filters.PriceMin != 800 {
		t.Errorf("filters = %+v", intent.Filters)
	}
}

func TestHandleStatusAndHealth(t *testing.T) {
	srv, store := newTestServer(t)

	if err := store.CreateListing(context.Background(), &models.Listing{
		ID: "l1", Title: "Clases de quechua", Category: models.CategoryServices,
	}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%v", status["listings"]) != "1" {
		t.Errorf("listings = %v, want 1", status["listings"])
	}

	rec = doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestHandleDeleteListing(t *testing.T) {
	srv, store := newTestServer(t)

	if err := store.CreateListing(context.Background(), &models.Listing{
		ID: "l1", Title: "Mudanzas economicas", Category: models.CategoryServices,
	}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodDelete, "/api/v1/listings/l1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/listings/l1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}
