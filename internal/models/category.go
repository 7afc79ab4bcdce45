package models

import "strings"

// Categories is the fixed set a recipe may belong to, in display order.
var Categories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Appetizer",
	"Salad",
	"Soup",
	"Snack",
	"Drinks",
}

// CanonicalCategory maps s to its canonical spelling, ignoring case and
// surrounding whitespace.
func CanonicalCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}
