// Package icons classifies forecast icon codes and loads the bitmaps drawn
// for each class, together with the transparency masks used to composite
// them onto a limited-palette display.
package icons

import (
	"errors"
	"fmt"
	"slices"
)

// Category is a coarse weather-condition grouping that selects a bitmap.
type Category string

const (
	Snow  Category = "snow"
	Rain  Category = "rain"
	Cloud Category = "cloud"
	Sun   Category = "sun"
	Storm Category = "storm"
	Wind  Category = "wind"
)

// ErrUnknownCode is returned by Lookup for codes outside the table.
var ErrUnknownCode = errors.New("icons: unknown icon code")

// Mapping lists the forecast icon codes drawn with one category.
type Mapping struct {
	Category Category
	Codes    []string
}

// table is scanned in order; the first category listing a code wins.
var table = []Mapping{
	{Snow, []string{"snow", "sleet"}},
	{Rain, []string{"rain"}},
	{Cloud, []string{"fog", "cloudy", "partly-cloudy-day", "partly-cloudy-night"}},
	{Sun, []string{"clear-day", "clear-night"}},
	{Storm, []string{"thunderstorm", "hail", "tornado"}},
	{Wind, []string{"wind"}},
}

// Lookup returns the category drawn for a forecast icon code.
func Lookup(code string) (Category, error) {
	for _, m := range table {
		if slices.Contains(m.Codes, code) {
			return m.Category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCode, code)
}

// Table returns a copy of the classification table in lookup order.
func Table() []Mapping {
	out := make([]Mapping, len(table))
	for i, m := range table {
		out[i] = Mapping{Category: m.Category, Codes: slices.Clone(m.Codes)}
	}
	return out
}

// Categories returns every category of the table in lookup order.
func Categories() []Category {
	out := make([]Category, len(table))
	for i, m := range table {
		out[i] = m.Category
	}
	return out
}
