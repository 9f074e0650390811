// Package refdata loads and validates the static reference data behind query
// analysis: the gazetteer, category keyword weights, phrase boosts, synonyms,
// and stop words. A Tables snapshot is built once, validated, and never
// mutated afterwards, so it is safe for unlimited concurrent readers.
package refdata

import (
	"fmt"
	"sort"

	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/textnorm"
)

// PlaceEntry is one gazetteer record: a canonical place name, its spelling
// variants, and coordinates.
type PlaceEntry struct {
	CanonicalName string   `yaml:"canonical_name"`
	Variants      []string `yaml:"variants"`
	Region        string   `yaml:"region"`
	Lat           float64  `yaml:"lat"`
	Lng           float64  `yaml:"lng"`
	Landmarks     []string `yaml:"landmarks,omitempty"`
}

// KeywordWeight maps one keyword to a category with a classification weight.
type KeywordWeight struct {
	Keyword  string          `yaml:"keyword"`
	Category models.Category `yaml:"category"`
	Weight   float64         `yaml:"weight"`
}

// PhraseBoost is a fixed multi-word phrase that strongly implies one category.
// Single keywords are often ambiguous; fixed phrases rarely are.
type PhraseBoost struct {
	Phrase   string          `yaml:"phrase"`
	Category models.Category `yaml:"category"`
	Boost    float64         `yaml:"boost"`
}

// SynonymGroup maps a canonical term to its alternate spellings or synonyms.
type SynonymGroup struct {
	Canonical  string   `yaml:"canonical"`
	Alternates []string `yaml:"alternates"`
}

// Data is the raw, file-shaped form of the reference data before validation.
type Data struct {
	HomePlace string         `yaml:"home_place"`
	Places    []PlaceEntry   `yaml:"places"`
	Keywords  []KeywordWeight `yaml:"keywords"`
	Phrases   []PhraseBoost  `yaml:"phrases"`
	// RetentionWeight is the minimum keyword weight at which a matched
	// category keyword is still kept as a search term. Matched keywords below
	// it are considered generic and dropped.
	RetentionWeight float64        `yaml:"retention_weight"`
	Synonyms        []SynonymGroup `yaml:"synonyms"`
	StopWords       []string       `yaml:"stop_words"`
}

// VariantRef points a normalized variant string at its gazetteer entry.
type VariantRef struct {
	Text  string
	Entry int
}

// Tables is one validated, immutable reference-data snapshot.
type Tables struct {
	places    []PlaceEntry
	homeIndex int

	keywords     []KeywordWeight // table order is the classification tie-break order
	keywordIndex map[string]int  // normalized keyword -> index into keywords
	phrases      []PhraseBoost
	synonyms     []SynonymGroup
	stopWords    map[string]struct{}

	retentionWeight float64

	// variants is sorted by descending text length so that a linear scan
	// finds the longest matching variant first.
	variants []VariantRef
}

const defaultRetentionWeight = 5

// Build validates d and constructs an immutable Tables snapshot.
// Reference-data errors fail fast here: a variant mapping to two places or a
// malformed weight hides a data-authoring bug if silently accepted.
func Build(d *Data) (*Tables, error) {
	if len(d.Places) == 0 {
		return nil, fmt.Errorf("gazetteer has no places")
	}

	t := &Tables{
		places:          d.Places,
		homeIndex:       -1,
		keywords:        d.Keywords,
		keywordIndex:    make(map[string]int, len(d.Keywords)),
		phrases:         make([]PhraseBoost, 0, len(d.Phrases)),
		synonyms:        d.Synonyms,
		stopWords:       make(map[string]struct{}, len(d.StopWords)),
		retentionWeight: d.RetentionWeight,
	}
	if t.retentionWeight <= 0 {
		t.retentionWeight = defaultRetentionWeight
	}

	seen := make(map[string]int) // normalized variant -> entry index
	for i, p := range d.Places {
		if p.CanonicalName == "" {
			return nil, fmt.Errorf("gazetteer entry %d has no canonical name", i)
		}
		for _, v := range append([]string{p.CanonicalName}, p.Variants...) {
			nv := textnorm.Normalize(v)
			if nv == "" {
				return nil, fmt.Errorf("place %q has an empty variant", p.CanonicalName)
			}
			if prev, ok := seen[nv]; ok {
				if prev != i {
					return nil, fmt.Errorf("gazetteer variant %q maps to both %q and %q",
						v, d.Places[prev].CanonicalName, p.CanonicalName)
				}
				continue // same entry listed the spelling twice
			}
			seen[nv] = i
			t.variants = append(t.variants, VariantRef{Text: nv, Entry: i})
		}
	}
	sort.Slice(t.variants, func(i, j int) bool {
		if len(t.variants[i].Text) != len(t.variants[j].Text) {
			return len(t.variants[i].Text) > len(t.variants[j].Text)
		}
		return t.variants[i].Text < t.variants[j].Text
	})

	home := textnorm.Normalize(d.HomePlace)
	if home == "" {
		t.homeIndex = 0
	} else if idx, ok := seen[home]; ok {
		t.homeIndex = idx
	} else {
		return nil, fmt.Errorf("home place %q is not in the gazetteer", d.HomePlace)
	}

	for i, kw := range d.Keywords {
		key := textnorm.Normalize(kw.Keyword)
		if key == "" {
			return nil, fmt.Errorf("keyword %d is empty after normalization", i)
		}
		if kw.Weight <= 0 {
			return nil, fmt.Errorf("keyword %q has non-positive weight %v", kw.Keyword, kw.Weight)
		}
		if !kw.Category.Valid() {
			return nil, fmt.Errorf("keyword %q has unknown category %q", kw.Keyword, kw.Category)
		}
		if _, dup := t.keywordIndex[key]; dup {
			return nil, fmt.Errorf("duplicate keyword %q", kw.Keyword)
		}
		t.keywords[i].Keyword = key
		t.keywordIndex[key] = i
	}

	for _, pb := range d.Phrases {
		phrase := textnorm.Normalize(pb.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("phrase boost has empty phrase")
		}
		if pb.Boost <= 0 {
			return nil, fmt.Errorf("phrase %q has non-positive boost %v", pb.Phrase, pb.Boost)
		}
		if !pb.Category.Valid() {
			return nil, fmt.Errorf("phrase %q has unknown category %q", pb.Phrase, pb.Category)
		}
		t.phrases = append(t.phrases, PhraseBoost{Phrase: phrase, Category: pb.Category, Boost: pb.Boost})
	}

	for i, g := range d.Synonyms {
		if textnorm.Normalize(g.Canonical) == "" {
			return nil, fmt.Errorf("synonym group %d has no canonical term", i)
		}
	}

	for _, w := range d.StopWords {
		if nw := textnorm.Normalize(w); nw != "" {
			t.stopWords[nw] = struct{}{}
		}
	}

	return t, nil
}

// Place returns the gazetteer entry at index i.
func (t *Tables) Place(i int) PlaceEntry { return t.places[i] }

// Home returns the designated fallback place.
func (t *Tables) Home() PlaceEntry { return t.places[t.homeIndex] }

// Variants returns variant references sorted longest-first.
func (t *Tables) Variants() []VariantRef { return t.variants }

// Keyword looks up an exact keyword by normalized token.
func (t *Tables) Keyword(token string) (KeywordWeight, bool) {
	if i, ok := t.keywordIndex[token]; ok {
		return t.keywords[i], true
	}
	return KeywordWeight{}, false
}

// Keywords returns the keyword table in its original (tie-break) order.
func (t *Tables) Keywords() []KeywordWeight { return t.keywords }

// CategoryOrder returns the index of the first keyword for c, used as the
// deterministic tie-break when two categories accumulate equal scores.
func (t *Tables) CategoryOrder(c models.Category) int {
	for i, kw := range t.keywords {
		if kw.Category == c {
			return i
		}
	}
	return len(t.keywords)
}

// Phrases returns the phrase boost table, phrases normalized.
func (t *Tables) Phrases() []PhraseBoost { return t.phrases }

// Synonyms returns the synonym groups.
func (t *Tables) Synonyms() []SynonymGroup { return t.synonyms }

// StopWord reports whether token is a stop word. Token must be normalized.
func (t *Tables) StopWord(token string) bool {
	_, ok := t.stopWords[token]
	return ok
}

// RetentionWeight is the minimum weight at which a matched category keyword
// is still retained as a search term.
func (t *Tables) RetentionWeight() float64 { return t.retentionWeight }
