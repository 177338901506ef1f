package usecase

import (
	"testing"

	"github.com/koshyk-app/backend/internal/domain"
)

func TestNormalizeRun(t *testing.T) {
	b := NewCatalogBuilder(NewTitleNormalizer(false))

	run := map[string][]domain.ProductRecord{
		"dairy": {
			{
				Title:    "Молоко незбиране Селянське 950г",
				Price:    43,
				Weight:   "950г",
				Producer: domain.Producer{Trademark: "Селянське"},
			},
			{Title: "", Price: 10},                 // no title
			{Title: "Кефір 2,5% 900г", Price: 0},  // no price
			{Title: "Ряжанка 4% 450г", Price: -5}, // negative price
		},
	}

	normalized := b.NormalizeRun(run)

	kept := normalized["dairy"]
	if len(kept) != 1 {
		t.Fatalf("kept %d records, want 1 (malformed records must be dropped)", len(kept))
	}
	if kept[0].MatchKey != "молоко незбиране" {
		t.Errorf("MatchKey = %q, want %q", kept[0].MatchKey, "молоко незбиране")
	}
	if kept[0].CategoryID != "dairy" {
		t.Errorf("CategoryID = %q, want dairy", kept[0].CategoryID)
	}

	// The input run must stay untouched.
	if run["dairy"][0].MatchKey != "" {
		t.Error("NormalizeRun mutated its input")
	}
}

func TestBuildNavigator(t *testing.T) {
	b := NewCatalogBuilder(NewTitleNormalizer(false))

	run := map[string][]domain.ProductRecord{
		"dairy": {
			{Title: "m1", MatchKey: "молоко незбиране", Price: 40},
			{Title: "m2", MatchKey: "молоко незбиране", Price: 45},
		},
		"breakfast": {
			{Title: "m3", MatchKey: "молоко незбиране", Price: 50},
			{Title: "k1", MatchKey: "каша вівсяна", Price: 20},
		},
	}

	navigator := b.BuildNavigator(run)

	if got := len(navigator["молоко незбиране"]); got != 2 {
		t.Errorf("milk key seen in %d categories, want 2", got)
	}
	if got := len(navigator["каша вівсяна"]); got != 1 {
		t.Errorf("porridge key seen in %d categories, want 1", got)
	}
}
