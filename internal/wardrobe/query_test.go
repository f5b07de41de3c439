package wardrobe

import (
	"testing"

	"github.com/erazemk/garderoba/internal/model"
)

func sampleItems() []model.WardrobeItem {
	return []model.WardrobeItem{
		{ID: "1", Name: "Blue Shirt", Category: "Tops", Status: model.StatusAvailable},
		{ID: "2", Name: "Black Jeans", Category: "Bottoms", Status: model.StatusUnavailable},
		{ID: "3", Name: "Red Dress", Category: "Dresses", Status: model.StatusAvailable},
		{ID: "4", Name: "Old T-Shirt", Category: "Tops", Status: model.StatusRarelyUsed},
	}
}

func TestFilterNoCriteriaReturnsAllInOrder(t *testing.T) {
	items := sampleItems()
	got := Filter(items, "", FacetAll)
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Errorf("order not preserved at index %d: expected %s, got %s", i, items[i].ID, got[i].ID)
		}
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter(sampleItems(), "BLUE", FacetAll)
	if len(got) != 1 || got[0].Name != "Blue Shirt" {
		t.Fatalf("expected only Blue Shirt, got %v", got)
	}
}

func TestFilterSearchMatchesCategory(t *testing.T) {
	got := Filter(sampleItems(), "tops", FacetAll)
	if len(got) != 2 {
		t.Fatalf("expected 2 items in Tops, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "4" {
		t.Errorf("expected items 1 and 4 in input order, got %s and %s", got[0].ID, got[1].ID)
	}
}

func TestFilterCombinesSearchAndFacet(t *testing.T) {
	got := Filter(sampleItems(), "shirt", FacetAvailable)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only available Blue Shirt, got %v", got)
	}
}

func TestFilterByFacetOnly(t *testing.T) {
	got := Filter(sampleItems(), "", FacetRarelyUsed)
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected only rarely used item, got %v", got)
	}
}

func TestFilterSearchTakenVerbatim(t *testing.T) {
	items := []model.WardrobeItem{
		{ID: "1", Name: "Blue Shirt", Category: "Tops"},
		{ID: "2", Name: "Scarf", Category: "Accessories"},
	}

	// A whitespace search is a literal substring, not "match everything".
	got := Filter(items, " ", FacetAll)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only the name containing a space, got %v", got)
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleItems(), "sweater", FacetAll)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestParseFacet(t *testing.T) {
	for _, s := range []string{"", "all", "available", "unavailable", "rarely_used"} {
		if _, err := ParseFacet(s); err != nil {
			t.Errorf("ParseFacet(%q): %v", s, err)
		}
	}
	if _, err := ParseFacet("broken"); err == nil {
		t.Error("expected error for unknown facet")
	}
}
