package refdata

import "github.com/qosqo/buscador/internal/models"

// DefaultData returns the built-in reference data for the Cusco market.
// It is used when no data files are configured and serves as documentation
// for the file format.
func DefaultData() *Data {
	return &Data{
		HomePlace: "Cusco",
		Places: []PlaceEntry{
			{
				CanonicalName: "Cusco",
				Variants:      []string{"cuzco", "qosqo", "cusco centro", "centro historico"},
				Region:        "Cusco",
				Lat:           -13.5319, Lng: -71.9675,
				Landmarks: []string{"plaza de armas", "mercado san pedro", "san blas"},
			},
			{
				CanonicalName: "Wanchaq",
				Variants:      []string{"wanchac", "huanchaq", "huanchac"},
				Region:        "Cusco",
				Lat:           -13.5281, Lng: -71.9536,
				Landmarks: []string{"ovalo pachacutec", "estadio garcilaso"},
			},
			{
				CanonicalName: "Santiago",
				Variants:      []string{"santiago de cusco"},
				Region:        "Cusco",
				Lat:           -13.5330, Lng: -71.9816,
			},
			{
				CanonicalName: "San Sebastián",
				Variants:      []string{"san sebastian"},
				Region:        "Cusco",
				Lat:           -13.5433, Lng: -71.9109,
			},
			{
				CanonicalName: "San Jerónimo",
				Variants:      []string{"san jeronimo"},
				Region:        "Cusco",
				Lat:           -13.5456, Lng: -71.8836,
				Landmarks: []string{"mercado vinocanchon"},
			},
			{
				CanonicalName: "Saylla",
				Region:        "Cusco",
				Lat:           -13.5631, Lng: -71.8269,
			},
			{
				CanonicalName: "Poroy",
				Region:        "Cusco",
				Lat:           -13.5089, Lng: -72.0289,
			},
			{
				CanonicalName: "Ccorca",
				Variants:      []string{"corca"},
				Region:        "Cusco",
				Lat:           -13.5833, Lng: -72.0667,
			},
		},
		Keywords: []KeywordWeight{
			// empleo: transaction words are deliberately low-weight (generic),
			// job titles high-weight (discriminative search terms).
			{Keyword: "trabajo", Category: models.CategoryEmployment, Weight: 3},
			{Keyword: "empleo", Category: models.CategoryEmployment, Weight: 3},
			{Keyword: "chamba", Category: models.CategoryEmployment, Weight: 3},
			{Keyword: "personal", Category: models.CategoryEmployment, Weight: 2},
			{Keyword: "cocinero", Category: models.CategoryEmployment, Weight: 8},
			{Keyword: "mozo", Category: models.CategoryEmployment, Weight: 8},
			{Keyword: "chofer", Category: models.CategoryEmployment, Weight: 8},
			{Keyword: "vendedor", Category: models.CategoryEmployment, Weight: 7},
			{Keyword: "recepcionista", Category: models.CategoryEmployment, Weight: 8},
			{Keyword: "albanil", Category: models.CategoryEmployment, Weight: 8},
			{Keyword: "secretaria", Category: models.CategoryEmployment, Weight: 7},
			{Keyword: "practicante", Category: models.CategoryEmployment, Weight: 6},

			// inmuebles
			{Keyword: "casa", Category: models.CategoryRealEstate, Weight: 4},
			{Keyword: "departamento", Category: models.CategoryRealEstate, Weight: 8},
			{Keyword: "habitacion", Category: models.CategoryRealEstate, Weight: 6},
			{Keyword: "cuarto", Category: models.CategoryRealEstate, Weight: 4},
			{Keyword: "minidepartamento", Category: models.CategoryRealEstate, Weight: 8},
			{Keyword: "terreno", Category: models.CategoryRealEstate, Weight: 7},
			{Keyword: "lote", Category: models.CategoryRealEstate, Weight: 6},
			{Keyword: "alquiler", Category: models.CategoryRealEstate, Weight: 6},
			{Keyword: "anticresis", Category: models.CategoryRealEstate, Weight: 8},
			{Keyword: "local", Category: models.CategoryRealEstate, Weight: 4},
			{Keyword: "oficina", Category: models.CategoryRealEstate, Weight: 6},

			// vehiculos
			{Keyword: "auto", Category: models.CategoryVehicles, Weight: 6},
			{Keyword: "carro", Category: models.CategoryVehicles, Weight: 6},
			{Keyword: "camioneta", Category: models.CategoryVehicles, Weight: 8},
			{Keyword: "moto", Category: models.CategoryVehicles, Weight: 7},
			{Keyword: "motocicleta", Category: models.CategoryVehicles, Weight: 8},
			{Keyword: "taxi", Category: models.CategoryVehicles, Weight: 6},
			{Keyword: "combi", Category: models.CategoryVehicles, Weight: 7},

			// servicios
			{Keyword: "servicio", Category: models.CategoryServices, Weight: 3},
			{Keyword: "gasfitero", Category: models.CategoryServices, Weight: 8},
			{Keyword: "electricista", Category: models.CategoryServices, Weight: 8},
			{Keyword: "carpintero", Category: models.CategoryServices, Weight: 8},
			{Keyword: "clases", Category: models.CategoryServices, Weight: 6},
			{Keyword: "reparacion", Category: models.CategoryServices, Weight: 6},
			{Keyword: "mudanza", Category: models.CategoryServices, Weight: 8},

			// productos
			{Keyword: "vendo", Category: models.CategoryProducts, Weight: 2},
			{Keyword: "celular", Category: models.CategoryProducts, Weight: 6},
			{Keyword: "laptop", Category: models.CategoryProducts, Weight: 7},
			{Keyword: "refrigeradora", Category: models.CategoryProducts, Weight: 8},
			{Keyword: "cocina", Category: models.CategoryProducts, Weight: 4},
			{Keyword: "ropero", Category: models.CategoryProducts, Weight: 7},
			{Keyword: "bicicleta", Category: models.CategoryProducts, Weight: 7},
		},
		Phrases: []PhraseBoost{
			{Phrase: "busco trabajo", Category: models.CategoryEmployment, Boost: 6},
			{Phrase: "se necesita personal", Category: models.CategoryEmployment, Boost: 6},
			{Phrase: "medio tiempo", Category: models.CategoryEmployment, Boost: 4},
			{Phrase: "tiempo completo", Category: models.CategoryEmployment, Boost: 4},
			{Phrase: "en alquiler", Category: models.CategoryRealEstate, Boost: 5},
			{Phrase: "en anticresis", Category: models.CategoryRealEstate, Boost: 6},
			{Phrase: "en venta", Category: models.CategoryRealEstate, Boost: 3},
			{Phrase: "papeles en regla", Category: models.CategoryVehicles, Boost: 5},
			{Phrase: "a domicilio", Category: models.CategoryServices, Boost: 4},
		},
		RetentionWeight: 5,
		Synonyms: []SynonymGroup{
			{Canonical: "departamento", Alternates: []string{"depa", "depto", "apartamento"}},
			{Canonical: "casa", Alternates: []string{"vivienda", "hogar"}},
			{Canonical: "habitacion", Alternates: []string{"cuarto", "dormitorio"}},
			{Canonical: "alquiler", Alternates: []string{"renta", "arriendo"}},
			{Canonical: "trabajo", Alternates: []string{"empleo", "chamba"}},
			{Canonical: "cocinero", Alternates: []string{"chef", "cocinera"}},
			{Canonical: "chofer", Alternates: []string{"conductor"}},
			{Canonical: "auto", Alternates: []string{"carro", "vehiculo", "coche"}},
			{Canonical: "moto", Alternates: []string{"motocicleta"}},
			{Canonical: "celular", Alternates: []string{"telefono", "smartphone"}},
			{Canonical: "terreno", Alternates: []string{"lote"}},
		},
		StopWords: []string{
			"busco", "necesito", "quiero", "deseo", "compro", "ofrezco",
			"a", "al", "ante", "con", "de", "del", "desde", "en", "entre",
			"hacia", "hasta", "para", "por", "sin", "sobre",
			"el", "la", "los", "las", "un", "una", "unos", "unas", "lo",
			"y", "o", "u", "que", "se", "su", "sus", "mi", "mis", "tu",
			"es", "son", "hay", "tengo", "estoy", "soy", "muy", "mas",
			"urgente", "favor", "porfavor", "hola", "zona", "cerca",
		},
	}
}

// DefaultTables builds the built-in data set. The defaults are maintained to
// always validate; failure here is a programming error.
func DefaultTables() *Tables {
	t, err := Build(DefaultData())
	if err != nil {
		panic("refdata: default data invalid: " + err.Error())
	}
	return t
}
