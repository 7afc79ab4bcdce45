// Package query derives filtered, newest-first views of a recipe collection
// from three independent optional criteria: free text, category and a
// prep-time bucket.
package query

import (
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/models"
)

// Filter holds the optional criteria. Empty fields impose no constraint.
type Filter struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	PrepTime string `json:"prepTime,omitempty"`
}

// FromValues reads the query, category and prepTime parameters. The free
// text is kept verbatim, so surrounding spaces take part in the substring
// match. Category and bucket are tokens and are trimmed.
func FromValues(v url.Values) Filter {
	return Filter{
		Query:    v.Get("query"),
		Category: strings.TrimSpace(v.Get("category")),
		PrepTime: strings.TrimSpace(v.Get("prepTime")),
	}
}

// Values is the inverse of FromValues; empty criteria are omitted.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set("query", f.Query)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.PrepTime != "" {
		v.Set("prepTime", f.PrepTime)
	}
	return v
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether r satisfies every criterion present in f.
func Match(r models.Recipe, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	if b, ok := ParseBucket(f.PrepTime); ok && !b.Contains(r.PrepTime) {
		return false
	}
	if f.Query != "" && !matchText(r, strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func matchText(r models.Recipe, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(r.Title), lowerQuery) {
		return true
	}
	for _, i := range r.Ingredients {
		if strings.Contains(strings.ToLower(i), lowerQuery) {
			return true
		}
	}
	return false
}

// Apply returns the recipes matching f, newest first. Recipes with equal
// timestamps keep their relative order. The input slice is not modified.
func Apply(recipes []models.Recipe, f Filter) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Match(r, f) {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders recipes by descending creation time, stably.
func SortNewestFirst(recipes []models.Recipe) {
	slices.SortStableFunc(recipes, func(a, b models.Recipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
