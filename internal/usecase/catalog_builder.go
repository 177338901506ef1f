package usecase

import (
	"log"

	"github.com/koshyk-app/backend/internal/domain"
)

// CatalogBuilder turns a raw scraping run into an indexed catalog: it stamps
// every record with its matching key and derives the navigator index that maps
// each key to the categories it was seen in.
type CatalogBuilder struct {
	normalizer *TitleNormalizer
}

// NewCatalogBuilder creates a new catalog builder.
func NewCatalogBuilder(normalizer *TitleNormalizer) *CatalogBuilder {
	return &CatalogBuilder{normalizer: normalizer}
}

// NormalizeRun fills the MatchKey of every record and drops records that fail
// parse-time validation instead of letting them poison the catalog. The input is
// not mutated; a fresh mapping is returned.
func (b *CatalogBuilder) NormalizeRun(categoryProducts map[string][]domain.ProductRecord) map[string][]domain.ProductRecord {
	normalized := make(map[string][]domain.ProductRecord, len(categoryProducts))
	for categoryID, products := range categoryProducts {
		kept := make([]domain.ProductRecord, 0, len(products))
		for _, product := range products {
			if err := ValidateRecord(product); err != nil {
				log.Printf("[CATALOG] dropping record %q in category %s: %v", product.Title, categoryID, err)
				continue
			}
			product.CategoryID = categoryID
			product.MatchKey = b.normalizer.Normalize(product.Title, product.Brand())
			kept = append(kept, product)
		}
		normalized[categoryID] = kept
	}
	return normalized
}

// BuildNavigator derives the key-to-categories index used by basket assembly to
// avoid a full catalog scan.
func (b *CatalogBuilder) BuildNavigator(categoryProducts map[string][]domain.ProductRecord) domain.Navigator {
	navigator := make(domain.Navigator)
	for categoryID, products := range categoryProducts {
		seen := make(map[string]bool, len(products))
		for _, product := range products {
			if product.MatchKey == "" || seen[product.MatchKey] {
				continue
			}
			seen[product.MatchKey] = true
			navigator[product.MatchKey] = append(navigator[product.MatchKey], categoryID)
		}
	}
	return navigator
}

// ValidateRecord rejects raw listings that cannot take part in price ranking.
func ValidateRecord(record domain.ProductRecord) error {
	if record.Title == "" {
		return domain.ErrMalformedRecord
	}
	if record.Price <= 0 {
		return domain.ErrMalformedRecord
	}
	if record.Bundle < 0 {
		return domain.ErrMalformedRecord
	}
	return nil
}
