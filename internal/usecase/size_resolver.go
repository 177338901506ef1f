package usecase

import (
	"fmt"
	"log"
	"regexp"

	"github.com/koshyk-app/backend/internal/domain"
)

var (
	// In-title size tokens such as "250мл", "1,5л", "2х3шт". The title is the
	// customer-facing source of truth: retailers frequently put gross packaging
	// weight in the declared fields while the real size sits in the title.
	titleSizeTokenRegex = regexp.MustCompile(`(?:^|\s)(\d+(?:[.,]\d+)?(?:\s*[xх×]\s*\d+(?:[.,]\d+)?)*\s?[a-zа-яїієґ]+)`)

	// "N шт х " spells out N discrete packs of a sub-unit; rewritten to "Nх" so
	// the run parses as a multiplication expression instead of stopping at "шт".
	packCountRegex = regexp.MustCompile(`(\d+)\s*шт\s*[xх×]\s*`)
)

// SizeResolver decides which of a record's redundant, sometimes-inconsistent
// size fields is authoritative, re-parsing the literal size token found inside
// the title when one is present.
type SizeResolver struct {
	enableDebugLogging bool
}

// NewSizeResolver creates a new size resolver.
func NewSizeResolver(enableDebugLogging bool) *SizeResolver {
	return &SizeResolver{enableDebugLogging: enableDebugLogging}
}

// Resolve returns the authoritative measurement for a record. The resolution is
// heuristic and never fails: any dead end falls back to the best measurement
// obtained so far, ultimately the unresolved declared one.
func (r *SizeResolver) Resolve(record domain.ProductRecord) domain.Measurement {
	declared := ParseSize(record.Weight)

	resolved := r.resolve(record, declared)
	if r.enableDebugLogging {
		log.Printf("[RESOLVE] %q: declared=%+v resolved=%+v", record.Title, declared, resolved)
	}
	return resolved
}

func (r *SizeResolver) resolve(record domain.ProductRecord, declared domain.Measurement) domain.Measurement {
	// Rule 1/2: a size token inside the title wins over the declared fields when
	// its dimension agrees with the declared parse, or when the declared field
	// has no legible unit at all.
	title := packCountRegex.ReplaceAllString(record.Title, "${1}х")
	if match := titleSizeTokenRegex.FindStringSubmatch(title); match != nil {
		fromTitle := ParseSize(match[1])
		if !fromTitle.IsZero() && (fromTitle.Dimension == declared.Dimension || declared.Unit == "") {
			return fromTitle
		}
	} else if record.Bundle > 0 && record.Unit != "" {
		// Rule 3: no title token, but a pack count and a unit are declared.
		synthesized := ParseSize(fmt.Sprintf("%d%s", record.Bundle, record.Unit))
		if !synthesized.IsZero() {
			return synthesized
		}
	}

	// Rule 4: a bare number in a weight field is almost always grams when >= 10
	// and kilograms otherwise; the symmetric rule applies to declared volume.
	if declared.Dimension == domain.DimensionQuantity && declared.Unit == "" {
		if hasPositiveNumericRun(record.Weight) {
			unit := "кг"
			if declared.Value >= 10 {
				unit = unitGram
			}
			return domain.Measurement{Value: declared.Value, Unit: unit, Dimension: domain.DimensionMass}
		}
		if record.Volume > 0 {
			unit := "л"
			if record.Volume >= 10 {
				unit = unitMilliliter
			}
			return domain.Measurement{Value: record.Volume, Unit: unit, Dimension: domain.DimensionCapacity}
		}
	}

	// Rule 5: nothing better found.
	return declared
}

// hasPositiveNumericRun reports whether s contains a numeric run that evaluates
// to a positive value. A weight field holding only "0" carries no size at all.
func hasPositiveNumericRun(s string) bool {
	run := numericRunRegex.FindString(s)
	return run != "" && evaluateNumericRun(run) > 0
}
