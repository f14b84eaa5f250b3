package catalog

import (
	"math"

	"github.com/Almas2004/led/internal/models"
)

// NoPriceCeiling lets every priced product through the price facet.
var NoPriceCeiling = math.Inf(1)

// Filter is a snapshot of the active facets. Facets combine with AND;
// values within the purpose and pitch facets combine with OR, and an empty
// selection means "any". Priced products above MaxPrice are hidden, so a
// zero ceiling leaves only "on request" items; use NoPriceCeiling for none.
type Filter struct {
	Type     models.ScreenType
	Purposes []string
	Pitches  []string
	MaxPrice float64
}

// Apply returns the products matching f, in source order. The input slice is
// never modified. Pitch selections outside the catalog of f.Type are ignored.
func Apply(products []models.Product, f Filter) []models.Product {
	purposeSet := toSet(f.Purposes)
	pitchSet := make(map[string]struct{}, len(f.Pitches))
	for _, p := range f.Pitches {
		if IsValidPitch(f.Type, p) {
			pitchSet[p] = struct{}{}
		}
	}

	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.Type != f.Type {
			continue
		}
		if !matchesPurpose(p, purposeSet) {
			continue
		}
		if len(pitchSet) > 0 {
			if _, ok := pitchSet[p.PixelPitch]; !ok {
				continue
			}
		}
		if p.HasPrice() && *p.PriceFrom > f.MaxPrice {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func matchesPurpose(p *models.Product, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range p.Purpose {
		if _, ok := selected[tag]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
