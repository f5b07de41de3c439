package wardrobe

import (
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// Facet is a discrete status filter dimension for dashboard queries.
type Facet string

// Dashboard facets.
const (
	FacetAll         Facet = "all"
	FacetAvailable   Facet = Facet(model.StatusAvailable)
	FacetUnavailable Facet = Facet(model.StatusUnavailable)
	FacetRarelyUsed  Facet = Facet(model.StatusRarelyUsed)
)

// ParseFacet maps a query-string value to a facet. An empty value means no
// status filtering.
func ParseFacet(s string) (Facet, error) {
	switch Facet(s) {
	case "", FacetAll:
		return FacetAll, nil
	case FacetAvailable, FacetUnavailable, FacetRarelyUsed:
		return Facet(s), nil
	}
	return "", fmt.Errorf("unknown status facet %q", s)
}

// Filter returns the items matching a free-text search and a status facet.
// The search is a case-insensitive substring match against name or category,
// taken verbatim; only the empty string matches everything. Both conditions
// must hold. Input order is preserved and the input slice is not modified.
func Filter(items []model.WardrobeItem, search string, facet Facet) []model.WardrobeItem {
	needle := strings.ToLower(search)

	matched := make([]model.WardrobeItem, 0, len(items))
	for _, item := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Category), needle) {
			continue
		}
		if facet != FacetAll && item.Status != model.Status(facet) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}
