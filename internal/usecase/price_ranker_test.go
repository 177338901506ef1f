package usecase

import (
	"math"
	"testing"

	"github.com/koshyk-app/backend/internal/domain"
)

func TestUnitPrice(t *testing.T) {
	gram500 := domain.Measurement{Value: 500, Unit: "г", Dimension: domain.DimensionMass}

	t.Run("price spread over measurement value", func(t *testing.T) {
		got := UnitPrice(domain.ProductRecord{Price: 100}, gram500)
		if got != 0.2 {
			t.Errorf("UnitPrice = %v, want 0.2", got)
		}
	})

	t.Run("multi-pack spreads price over every unit", func(t *testing.T) {
		got := UnitPrice(domain.ProductRecord{Price: 100, Bundle: 2}, gram500)
		if got != 0.1 {
			t.Errorf("UnitPrice = %v, want 0.1", got)
		}
	})

	t.Run("zero measurement ranks at infinity", func(t *testing.T) {
		got := UnitPrice(domain.ProductRecord{Price: 100}, domain.Measurement{})
		if !math.IsInf(got, 1) {
			t.Errorf("UnitPrice = %v, want +Inf", got)
		}
	})

	t.Run("lower price never ranks worse at equal size", func(t *testing.T) {
		cheap := UnitPrice(domain.ProductRecord{Price: 54}, gram500)
		dear := UnitPrice(domain.ProductRecord{Price: 100}, gram500)
		if cheap > dear {
			t.Errorf("cheaper offer ranked worse: %v > %v", cheap, dear)
		}
	})
}
