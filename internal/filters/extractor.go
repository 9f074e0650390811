// Package filters extracts structured constraints (price, room count) from
// query text. Patterns run against the lowercased original message rather
// than the normalized form, because normalization strips the "s/" currency
// marker the price patterns anchor on.
package filters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/qosqo/buscador/internal/models"
)

var (
	roomPattern = regexp.MustCompile(`(\d+)\s*(?:habitacion(?:es)?|habitación(?:es)?|cuartos?|dormitorios?|ambientes?)`)

	// "s/ 800 a 1,200", "s/. 800 - s/ 1200", "s/800 hasta 1200"
	rangePattern = regexp.MustCompile(`s/\.?\s*(\d[\d,]*)\s*(?:a|-|–|hasta)\s*(?:s/\.?\s*)?(\d[\d,]*)`)

	// "800 a 1200 soles"
	solesRangePattern = regexp.MustCompile(`(\d[\d,]*)\s*(?:a|-|–|hasta)\s*(\d[\d,]*)\s*soles`)

	// "s/ 800" or "800 soles"
	amountPattern = regexp.MustCompile(`s/\.?\s*(\d[\d,]*)|(\d[\d,]*)\s*soles`)
)

// Extract pulls price and room constraints out of text. Text must already be
// lowercased. A price range sets both bounds; a lone amount is treated as a
// ceiling, which matches how people quote budgets in listings.
func Extract(text string) models.Filters {
	var f models.Filters

	if m := roomPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			f.RoomCount = &n
		}
	}

	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		m = solesRangePattern.FindStringSubmatch(text)
	}
	if m != nil {
		lo, okLo := parseAmount(m[1])
		hi, okHi := parseAmount(m[2])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			f.PriceMin = &lo
			f.PriceMax = &hi
			return f
		}
	}

	if m := amountPattern.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if v, ok := parseAmount(raw); ok {
			f.PriceMax = &v
		}
	}
	return f
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
