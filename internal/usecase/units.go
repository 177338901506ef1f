package usecase

import "github.com/koshyk-app/backend/internal/domain"

// Canonical unit labels per dimension.
const (
	unitGram       = "г"
	unitMilliliter = "мл"
	unitMeter      = "м"
)

// unitInfo describes a recognized unit token: its dimension, the factor that
// rescales a value to the canonical unit, and the canonical unit label itself.
type unitInfo struct {
	dimension domain.Dimension
	factor    float64
	canonical string
}

// unitTable is the static table of recognized unit tokens, Cyrillic and Latin.
// Any token not listed here is a discrete count.
var unitTable = map[string]unitInfo{
	// Capacity
	"л":  {domain.DimensionCapacity, 1000, unitMilliliter},
	"l":  {domain.DimensionCapacity, 1000, unitMilliliter},
	"мл": {domain.DimensionCapacity, 1, unitMilliliter},
	"ml": {domain.DimensionCapacity, 1, unitMilliliter},

	// Mass
	"кг": {domain.DimensionMass, 1000, unitGram},
	"kg": {domain.DimensionMass, 1000, unitGram},
	"г":  {domain.DimensionMass, 1, unitGram},
	"g":  {domain.DimensionMass, 1, unitGram},

	// Length
	"км": {domain.DimensionLength, 1000, unitMeter},
	"km": {domain.DimensionLength, 1000, unitMeter},
	"м":  {domain.DimensionLength, 1, unitMeter},
	"m":  {domain.DimensionLength, 1, unitMeter},
	"см": {domain.DimensionLength, 0.01, unitMeter},
	"cm": {domain.DimensionLength, 0.01, unitMeter},
	"мм": {domain.DimensionLength, 0.001, unitMeter},
	"mm": {domain.DimensionLength, 0.001, unitMeter},
}

// DimensionOf classifies a unit token. Unknown tokens (including the empty one)
// are discrete counts, so the dimension of a measurement is always fully
// determined by its unit.
func DimensionOf(unit string) domain.Dimension {
	if info, ok := unitTable[unit]; ok {
		return info.dimension
	}
	return domain.DimensionQuantity
}
