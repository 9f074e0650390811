// Package integration provides end-to-end tests over real SQLite storage.
package integration

import (
	"context"
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

func newEngine(t *testing.T) (*search.Engine, *storage.SQLiteStore) {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "listings.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	refStore := refdata.NewStore(refdata.DefaultTables(), "")
	engine := search.NewEngine(
		store,
		analyzer.New(refStore),
		ranking.NewRanker(&cfg.Scoring),
		cfg.Search,
		zap.NewNop(),
	)
	return engine, store
}

func seed(t *testing.T, store *storage.SQLiteStore, listings ...*models.Listing) {
	t.Helper()
	for _, l := range listings {
		if err := store.CreateListing(context.Background(), l); err != nil {
			t.Fatalf("seed %s: %v", l.ID, err)
		}
	}
}

func TestIntegration_JobSearch(t *testing.T) {
	engine, store := newEngine(t)
	price := 1500.0

	seed(t, store,
		&models.Listing{
			ID: "job-wanchaq", Title: "Se necesita cocinero para restaurante",
			Description: "Turno completo, experiencia minima 1 año",
			Category:    models.CategoryEmployment,
			Location:    models.TextLocation("Wanchaq"),
			Price:       &price,
			PublishedAt: time.Now().Add(-24 * time.Hour), IsActive: true,
		},
		&models.Listing{
			ID: "job-chef", Title: "Restaurante busca chef",
			Category:    models.CategoryEmployment,
			Location:    models.TextLocation("Cusco centro"),
			PublishedAt: time.Now().Add(-2 * 24 * time.Hour), IsActive: true,
		},
		&models.Listing{
			ID: "unrelated", Title: "Vendo refrigeradora seminueva",
			Category:    models.CategoryProducts,
			Location:    models.TextLocation("San Jerónimo"),
			PublishedAt: time.Now().Add(-40 * 24 * time.Hour),
		},
	)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{
		Query: "Busco trabajo de cocinero en Wanchaq",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Total != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", resp.Total, resp.Results)
	}
	// The direct title and district match outranks the synonym-only match.
	if resp.Results[0].Listing.ID != "job-wanchaq" || resp.Results[1].Listing.ID != "job-chef" {
		t.Errorf("order = [%s %s], want [job-wanchaq job-chef]",
			resp.Results[0].Listing.ID, resp.Results[1].Listing.ID)
	}

	intent := resp.Intent
	if intent.PrimaryCategory != models.CategoryEmployment {
		t.Errorf("PrimaryCategory = %q, want empleo", intent.PrimaryCategory)
	}
	if intent.Location != "Wanchaq" || intent.LocationFallback {
		t.Errorf("Location = %q (fallback=%v), want Wanchaq", intent.Location, intent.LocationFallback)
	}
	if intent.Confidence < 0.8 {
		t.Errorf("Confidence = %v, want >= 0.8", intent.Confidence)
	}
}

func TestIntegration_RentalSearchWithFilters(t *testing.T) {
	engine, store := newEngine(t)
	p900, p2500 := 900.0, 2500.0
	rooms2 := 2

	seed(t, store,
		&models.Listing{
			ID: "depa-cusco", Title: "Departamento en alquiler en Cusco",
			Description: "2 dormitorios, S/ 900 mensual",
			Category:    models.CategoryRealEstate,
			Location: models.StructuredLoc(models.StructuredLocation{
				Region: "Cusco", District: "Cusco", Lat: -13.5319, Lng: -71.9675,
			}),
			Price: &p900, Rooms: &rooms2,
			PublishedAt: time.Now().Add(-5 * 24 * time.Hour), IsActive: true,
		},
		&models.Listing{
			ID: "casa-saylla", Title: "Casa de campo en venta",
			Category:    models.CategoryRealEstate,
			Location:    models.TextLocation("Saylla"),
			Price:       &p2500,
			PublishedAt: time.Now().Add(-10 * 24 * time.Hour), IsActive: true,
		},
	)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{
		Query: "Departamento en alquiler Cusco S/ 800 a 1,200",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Total < 1 || resp.Results[0].Listing.ID != "depa-cusco" {
		t.Fatalf("expected depa-cusco first, got %+v", resp.Results)
	}

	intent := resp.Intent
	if intent.PrimaryCategory != models.CategoryRealEstate {
		t.Errorf("PrimaryCategory = %q, want inmuebles", intent.PrimaryCategory)
	}
	if intent.Filters.PriceMin == nil || *intent.Filters.PriceMin != 800 ||
		intent.Filters.PriceMax == nil || *intent.Filters.PriceMax != 1200 {
		t.Errorf("Filters = %+v, want price range 800-1200", intent.Filters)
	}
	if intent.Location != "Cusco" {
		t.Errorf("Location = %q, want Cusco", intent.Location)
	}
}

func TestIntegration_EmptyQueryBrowsesRecent(t *testing.T) {
	engine, store := newEngine(t)

	seed(t, store,
		&models.Listing{
			ID: "fresh", Title: "Moto lineal seminueva",
			Category:    models.CategoryVehicles,
			Location:    models.TextLocation("Santiago"),
			PublishedAt: time.Now().Add(-time.Hour), IsActive: true,
		},
	)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Query: ""})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Results[0].Listing.ID != "fresh" {
		t.Fatalf("expected the recent listing, got %+v", resp.Results)
	}
	if resp.Intent.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0 for an empty query", resp.Intent.Confidence)
	}
}
