package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qosqo/buscador/internal/models"
)

func TestBuild_Defaults(t *testing.T) {
	tables, err := Build(DefaultData())
	if err != nil {
		t.Fatalf("default data must validate: %v", err)
	}
	if tables.Home().CanonicalName != "Cusco" {
		t.Errorf("expected home place Cusco, got %q", tables.Home().CanonicalName)
	}
	if kw, ok := tables.Keyword("cocinero"); !ok || kw.Category != models.CategoryEmployment {
		t.Errorf("expected cocinero -> empleo, got %+v (ok=%v)", kw, ok)
	}
	if !tables.StopWord("busco") {
		t.Error("expected busco to be a stop word")
	}
	if tables.RetentionWeight() != 5 {
		t.Errorf("expected retention weight 5, got %v", tables.RetentionWeight())
	}
}

func TestBuild_VariantsSortedLongestFirst(t *testing.T) {
	tables := DefaultTables()
	variants := tables.Variants()
	for i := 1; i < len(variants); i++ {
		if len(variants[i-1].Text) < len(variants[i].Text) {
			t.Fatalf("variants not sorted longest-first at %d: %q before %q",
				i, variants[i-1].Text, variants[i].Text)
		}
	}
}

func TestBuild_RejectsVariantCollision(t *testing.T) {
	d := DefaultData()
	// "wanchac" already belongs to Wanchaq.
	d.Places = append(d.Places, PlaceEntry{
		CanonicalName: "Otro Lugar",
		Variants:      []string{"wanchac"},
		Region:        "Cusco",
	})
	if _, err := Build(d); err == nil {
		t.Fatal("expected collision error, got nil")
	}
}

func TestBuild_AllowsDuplicateVariantInSameEntry(t *testing.T) {
	d := DefaultData()
	d.Places[0].Variants = append(d.Places[0].Variants, "Cuzco") // same entry, different casing
	if _, err := Build(d); err != nil {
		t.Fatalf("same-entry duplicate must be tolerated: %v", err)
	}
}

func TestBuild_RejectsBadData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Data)
	}{
		{"non-positive weight", func(d *Data) {
			d.Keywords = append(d.Keywords, KeywordWeight{Keyword: "nuevo", Category: models.CategoryProducts, Weight: 0})
		}},
		{"duplicate keyword", func(d *Data) {
			d.Keywords = append(d.Keywords, KeywordWeight{Keyword: "cocinero", Category: models.CategoryServices, Weight: 1})
		}},
		{"unknown category", func(d *Data) {
			d.Keywords = append(d.Keywords, KeywordWeight{Keyword: "nuevo", Category: "mascotas", Weight: 1})
		}},
		{"unknown home place", func(d *Data) {
			d.HomePlace = "Lima"
		}},
		{"no places", func(d *Data) {
			d.Places = nil
		}},
		{"phrase without boost", func(d *Data) {
			d.Phrases = append(d.Phrases, PhraseBoost{Phrase: "gran oferta", Category: models.CategoryProducts})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultData()
			tt.mutate(d)
			if _, err := Build(d); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_MissingFilesFallBackToDefaults(t *testing.T) {
	d, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(d.Places) == 0 || len(d.Keywords) == 0 {
		t.Error("expected defaults when directory is empty")
	}
}

func TestLoad_OverridesFromFiles(t *testing.T) {
	dir := t.TempDir()
	gz := `
home_place: Calca
places:
  - canonical_name: Calca
    variants: ["kalca"]
    region: Cusco
    lat: -13.32
    lng: -71.95
`
	if err := os.WriteFile(filepath.Join(dir, GazetteerFile), []byte(gz), 0644); err != nil {
		t.Fatal(err)
	}
	tables, err := LoadTables(dir)
	if err != nil {
		t.Fatalf("LoadTables() error: %v", err)
	}
	if tables.Home().CanonicalName != "Calca" {
		t.Errorf("expected home Calca, got %q", tables.Home().CanonicalName)
	}
	// Non-gazetteer sections still come from defaults.
	if _, ok := tables.Keyword("cocinero"); !ok {
		t.Error("expected default keywords to survive a gazetteer-only override")
	}
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CategoriesFile), []byte("keywords: [}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestStore_ReloadKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	tables, err := LoadTables(dir)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(tables, dir)

	bad := `
places:
  - canonical_name: ""
`
	if err := os.WriteFile(filepath.Join(dir, GazetteerFile), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error for invalid data")
	}
	if store.Tables() != tables {
		t.Error("previous snapshot must stay live after a failed reload")
	}
}
