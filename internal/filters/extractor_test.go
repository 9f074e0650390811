package filters

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMin  float64
		wantMax  float64
		wantRoom int
	}{
		{
			name:    "price range",
			input:   "departamento en alquiler Cusco S/ 800 a 1,200",
			wantMin: 800, wantMax: 1200,
		},
		{
			name:    "range with dash and repeated marker",
			input:   "cuarto S/. 400 - S/ 600",
			wantMin: 400, wantMax: 600,
		},
		{
			name:    "soles suffix range",
			input:   "departamento de 800 a 1200 soles",
			wantMin: 800, wantMax: 1200,
		},
		{
			name:    "reversed range is reordered",
			input:   "s/ 1200 a 800",
			wantMin: 800, wantMax: 1200,
		},
		{
			name:    "single amount is a ceiling",
			input:   "habitacion s/ 500 wanchaq",
			wantMax: 500,
		},
		{
			name:    "soles suffix",
			input:   "alquilo minidepartamento 650 soles",
			wantMax: 650,
		},
		{
			name:     "room count",
			input:    "busco departamento de 3 dormitorios",
			wantRoom: 3,
		},
		{
			name:     "rooms and budget together",
			input:    "casa 2 habitaciones hasta S/ 900",
			wantRoom: 2, wantMax: 900,
		},
		{
			name:  "no filters",
			input: "busco trabajo de cocinero en wanchaq",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract(strings.ToLower(tt.input))

			if got := deref(f.PriceMin); got != tt.wantMin {
				t.Errorf("PriceMin = %v, want %v", got, tt.wantMin)
			}
			if got := deref(f.PriceMax); got != tt.wantMax {
				t.Errorf("PriceMax = %v, want %v", got, tt.wantMax)
			}
			room := 0
			if f.RoomCount != nil {
				room = *f.RoomCount
			}
			if room != tt.wantRoom {
				t.Errorf("RoomCount = %v, want %v", room, tt.wantRoom)
			}
		})
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
