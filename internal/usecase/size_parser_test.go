package usecase

import (
	"testing"

	"github.com/koshyk-app/backend/internal/domain"
)

func TestParseSize(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want domain.Measurement
	}{
		{
			name: "grams",
			text: "250г",
			want: domain.Measurement{Value: 250, Unit: "г", Dimension: domain.DimensionMass},
		},
		{
			name: "liters with comma decimal",
			text: "1,5л",
			want: domain.Measurement{Value: 1.5, Unit: "л", Dimension: domain.DimensionCapacity},
		},
		{
			name: "latin milliliters with space",
			text: "500 ml",
			want: domain.Measurement{Value: 500, Unit: "ml", Dimension: domain.DimensionCapacity},
		},
		{
			name: "kilograms with dot decimal",
			text: "2.95кг",
			want: domain.Measurement{Value: 2.95, Unit: "кг", Dimension: domain.DimensionMass},
		},
		{
			name: "length in centimeters",
			text: "30см",
			want: domain.Measurement{Value: 30, Unit: "см", Dimension: domain.DimensionLength},
		},
		{
			name: "multiplication expression evaluates to product",
			text: "3х50г",
			want: domain.Measurement{Value: 150, Unit: "г", Dimension: domain.DimensionMass},
		},
		{
			name: "multiplication expression with discrete unit",
			text: "2х3шт",
			want: domain.Measurement{Value: 6, Unit: "шт", Dimension: domain.DimensionQuantity},
		},
		{
			name: "no numeric run defaults to one",
			text: "шт",
			want: domain.Measurement{Value: 1, Unit: "шт", Dimension: domain.DimensionQuantity},
		},
		{
			name: "no unit token is a discrete count",
			text: "12",
			want: domain.Measurement{Value: 12, Unit: "", Dimension: domain.DimensionQuantity},
		},
		{
			name: "bare zero is a single discrete unit",
			text: "0",
			want: domain.Measurement{Value: 1, Unit: "", Dimension: domain.DimensionQuantity},
		},
		{
			name: "empty string",
			text: "",
			want: domain.Measurement{Value: 1, Unit: "", Dimension: domain.DimensionQuantity},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSize(tc.text)
			if got != tc.want {
				t.Errorf("ParseSize(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestDimensionOfIsTotal(t *testing.T) {
	// Every measurement's dimension is fully determined by its unit token.
	for unit, info := range unitTable {
		if DimensionOf(unit) != info.dimension {
			t.Errorf("DimensionOf(%q) = %v, want %v", unit, DimensionOf(unit), info.dimension)
		}
	}
	if DimensionOf("шт") != domain.DimensionQuantity {
		t.Errorf("unknown unit must classify as a discrete count")
	}
	if DimensionOf("") != domain.DimensionQuantity {
		t.Errorf("empty unit must classify as a discrete count")
	}
}
