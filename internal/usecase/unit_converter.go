package usecase

import "github.com/koshyk-app/backend/internal/domain"

// CanonicalizeMeasurement rescales a measurement to the canonical unit of its
// dimension: liters to milliliters, kilograms to grams, centimeters, millimeters
// and kilometers to meters. Latin unit aliases are normalized to the canonical
// Cyrillic labels.
//
// When the caller supplies a mass preference and the canonical unit is
// milliliters, the unit label is rewritten to grams so liquid and solid
// foodstuffs can be price-compared by weight-equivalent volume. The rewrite is
// never applied silently: it happens only on explicit request.
func CanonicalizeMeasurement(m domain.Measurement, preferred domain.Dimension) domain.Measurement {
	info, ok := unitTable[m.Unit]
	if !ok {
		// Discrete counts and unknown tokens have no canonical rescale.
		return m
	}

	out := domain.Measurement{
		Value:     m.Value * info.factor,
		Unit:      info.canonical,
		Dimension: info.dimension,
	}

	if out.Dimension == domain.DimensionCapacity && out.Unit == unitMilliliter && preferred == domain.DimensionMass {
		out.Unit = unitGram
		out.Dimension = domain.DimensionMass
	}

	return out
}
