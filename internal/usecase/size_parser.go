package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/koshyk-app/backend/internal/domain"
)

var (
	// First numeric run of a size string. A plain multiplication expression such
	// as "3х50" (read "3 times 50") is captured whole and evaluated to the
	// product of its operands; the decimal separator may be "." or ",".
	numericRunRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?(?:\s*[xх×]\s*\d+(?:[.,]\d+)?)*`)

	multiplicationSignRegex = regexp.MustCompile(`[xх×]`)

	// First unit-token run: Cyrillic or Latin letters.
	unitTokenRegex = regexp.MustCompile(`[a-zA-Zа-яА-ЯїЇіІєЄґҐ]+`)
)

// ParseSize extracts a numeric value and a unit token from a free-text size
// string. A missing numeric run means a single discrete unit (value 1); a
// missing unit token leaves the measurement dimensionless (a discrete count).
func ParseSize(text string) domain.Measurement {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Measurement{Value: 1, Unit: "", Dimension: domain.DimensionQuantity}
	}

	value := 1.0
	unitSearchFrom := 0
	if loc := numericRunRegex.FindStringIndex(text); loc != nil {
		value = evaluateNumericRun(text[loc[0]:loc[1]])
		unitSearchFrom = loc[1]
	}
	if value <= 0 {
		// A bare "0" in a size field carries no information; treat the listing
		// as a single discrete unit.
		value = 1
	}

	unit := ""
	if loc := unitTokenRegex.FindStringIndex(text[unitSearchFrom:]); loc != nil {
		unit = strings.ToLower(text[unitSearchFrom+loc[0] : unitSearchFrom+loc[1]])
	}

	return domain.Measurement{Value: value, Unit: unit, Dimension: DimensionOf(unit)}
}

// evaluateNumericRun turns "1,5" into 1.5 and "3х50" into 150.
func evaluateNumericRun(run string) float64 {
	product := 1.0
	any := false
	for _, operand := range multiplicationSignRegex.Split(run, -1) {
		operand = strings.TrimSpace(strings.ReplaceAll(operand, ",", "."))
		if operand == "" {
			continue
		}
		v, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			continue
		}
		product *= v
		any = true
	}
	if !any {
		return 1
	}
	return product
}
