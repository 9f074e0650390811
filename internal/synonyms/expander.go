// Package synonyms widens a term list with known equivalent words so that a
// query for "depa" also retrieves listings that say "departamento".
package synonyms

import (
	"sort"

	"github.com/qosqo/buscador/internal/refdata"
	"github.com/qosqo/buscador/internal/textnorm"
)

// Expander expands query terms using the synonym groups in the reference data.
type Expander struct {
	store *refdata.Store
}

// NewExpander creates an expander over the given reference-data store.
func NewExpander(store *refdata.Store) *Expander {
	return &Expander{store: store}
}

// Expand returns terms plus every synonym of any term. The input terms come
// first in their original order; additions follow sorted, so the output is
// deterministic and always a superset of the input.
func (e *Expander) Expand(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := present[t]; ok {
			continue
		}
		present[t] = struct{}{}
		out = append(out, t)
	}

	var added []string
	add := func(term string) {
		term = textnorm.Normalize(term)
		if term == "" {
			return
		}
		if _, ok := present[term]; ok {
			return
		}
		present[term] = struct{}{}
		added = append(added, term)
	}

	// Group membership is decided against the input terms only, so one
	// expansion cannot trigger another.
	input := make(map[string]struct{}, len(out))
	for _, t := range out {
		input[t] = struct{}{}
	}

	for _, g := range e.store.Tables().Synonyms() {
		canonical := textnorm.Normalize(g.Canonical)
		_, hit := input[canonical]
		if !hit {
			for _, alt := range g.Alternates {
				if _, ok := input[textnorm.Normalize(alt)]; ok {
					hit = true
					break
				}
			}
		}
		if !hit {
			continue
		}
		add(canonical)
		for _, alt := range g.Alternates {
			add(alt)
		}
	}

	sort.Strings(added)
	return append(out, added...)
}
