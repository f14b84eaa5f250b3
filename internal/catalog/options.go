// Package catalog narrows the product catalog by type, pixel pitch, purpose
// and price. Everything here is pure and safe to call on every render.
package catalog

import (
	"strings"

	"github.com/Almas2004/led/internal/models"
)

// DefaultMaxPrice is the price ceiling of a fresh filter, in tenge.
const DefaultMaxPrice = 50_000_000

// Canonical pitch catalogs per screen type, in display order.
var pitchCatalog = map[models.ScreenType][]string{
	models.ScreenIndoor:  {"4.0", "3.0", "2.5", "2.0", "1.8", "1.2"},
	models.ScreenOutdoor: {"10", "8.0", "5.0", "4.0", "3.0", "2.5"},
}

var purposes = []string{"Реклама", "Образование", "Сцена", "Спорт", "Конференц залы", "Теле-студий"}

// PitchOptions returns the selectable pixel pitches for a screen type.
func PitchOptions(t models.ScreenType) []string {
	return append([]string(nil), pitchCatalog[t]...)
}

// IsValidPitch reports whether pitch belongs to the catalog of t.
func IsValidPitch(t models.ScreenType, pitch string) bool {
	for _, p := range pitchCatalog[t] {
		if p == pitch {
			return true
		}
	}
	return false
}

// Purposes returns the canonical purpose tags.
func Purposes() []string {
	return append([]string(nil), purposes...)
}

// ParseType maps a query value to a screen type, falling back to indoor.
func ParseType(raw string) models.ScreenType {
	t := models.ScreenType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return models.ScreenIndoor
	}
	return t
}

// Featured returns up to n items for which isFeatured is true, keeping source order.
// n <= 0 means no limit.
func Featured[T any](items []T, isFeatured func(T) bool, n int) []T {
	out := make([]T, 0)
	for _, it := range items {
		if n > 0 && len(out) == n {
			break
		}
		if isFeatured(it) {
			out = append(out, it)
		}
	}
	return out
}
