package domain

import (
	"encoding/json"
	"fmt"
)

// Dimension classifies a unit token for conversion and comparison purposes.
type Dimension int

const (
	DimensionUnknown Dimension = iota
	DimensionMass
	DimensionCapacity
	DimensionLength
	DimensionQuantity
)

var dimensionNames = map[Dimension]string{
	DimensionUnknown:  "unknown",
	DimensionMass:     "mass",
	DimensionCapacity: "capacity",
	DimensionLength:   "length",
	DimensionQuantity: "quantity",
}

func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the dimension as its lowercase name.
func (d Dimension) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a dimension from its lowercase name.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for dim, n := range dimensionNames {
		if n == name {
			*d = dim
			return nil
		}
	}
	return fmt.Errorf("unknown dimension %q", name)
}

// Measurement describes a product's physical size as a (value, unit, dimension)
// triple. The dimension is derived solely from the unit token; a value of 1 with
// an empty unit means a single discrete item.
type Measurement struct {
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Dimension Dimension `json:"dimension"`
}

// IsZero reports whether the measurement carries no usable size.
func (m Measurement) IsZero() bool {
	return m.Value == 0
}
