package usecase

import (
	"math"

	"github.com/koshyk-app/backend/internal/domain"
)

// UnitPrice computes the price per canonical unit for an offer, spreading the
// price over every physical unit of a multi-pack. A zero-valued measurement
// would divide by zero; such offers rank at +Inf so they sort last and are never
// selected as the minimum unless they are the only candidate.
func UnitPrice(record domain.ProductRecord, m domain.Measurement) float64 {
	denominator := m.Value * float64(record.PackSize())
	if denominator == 0 {
		return math.Inf(1)
	}
	return record.Price / denominator
}
