package usecase

import (
	"log"
	"regexp"
	"strings"
)

// Regexp fragments for the heuristic brand span: a maximal run of capitalized
// words, tolerant of trademark symbols and hyphens, with at most one bounded
// lowercase connector word between them. The span never starts at the very
// beginning of the title, so the leading product noun survives.
const (
	brandWordPattern      = `[A-ZА-ЯЇІЄҐ][A-Za-zА-Яа-яЇїІіЄєҐґ'’\-—.®]*`
	brandConnectorPattern = `[a-zа-яїієґ'’\-—.®]{1,5}`
)

// Compiled extraction rules, applied in order. Each rule is independently
// testable; see TestExtractionRules.
var (
	brandSpanRegex = regexp.MustCompile(
		`\s(` + brandWordPattern + `(?:\s+(?:` + brandConnectorPattern + `\s+)?` + brandWordPattern + `)*)`,
	)

	// Size tokens such as "250г", "1,5л", "3х50мл", anchored so a size at the
	// very start of a title is stripped too.
	sizeTokenRegex = regexp.MustCompile(`(?:^|\s)\d+(?:[.,]\d+)*(?:\s*[xх×]\s*\d+(?:[.,]\d+)*)*[a-zа-яїієґ]+`)

	// Percentage tokens such as "2,5 %".
	percentageRegex = regexp.MustCompile(`\s\d+(?:[.,]\d+)*\s*%`)

	// Product serial markers such as "№1".
	serialNumberRegex = regexp.MustCompile(`№\d*`)

	decorativeSymbolsRegex = regexp.MustCompile(`[®™]`)
	quotesRegex            = regexp.MustCompile(`['"‘’«»”„]`)
	bracketsRegex          = regexp.MustCompile(`[()\[\]{}]`)

	repeatedSpacesRegex = regexp.MustCompile(`\s{2,}`)
)

// TitleNormalizer derives the matching key of a product title: the form with
// brand, size, percentage and decoration stripped, used to group equivalent
// listings across shops.
type TitleNormalizer struct {
	enableDebugLogging bool
}

// NewTitleNormalizer creates a new title normalizer.
func NewTitleNormalizer(enableDebugLogging bool) *TitleNormalizer {
	return &TitleNormalizer{enableDebugLogging: enableDebugLogging}
}

// Normalize produces the matching key for a title. When the brand is known it is
// removed verbatim, otherwise a heuristic capitalized-word span is stripped. The
// function is deterministic and idempotent, and it never fails: any internal
// error falls back to the lower-cased title so a listing is never lost at
// ingestion.
func (n *TitleNormalizer) Normalize(title, brand string) (key string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[NORMALIZE] failed to normalize %q (brand %q): %v", title, brand, r)
			key = strings.ToLower(title)
		}
	}()

	key = n.stripBrand(title, brand)
	key = strings.ToLower(key)
	key = sizeTokenRegex.ReplaceAllString(key, " ")
	key = percentageRegex.ReplaceAllString(key, " ")
	key = serialNumberRegex.ReplaceAllString(key, "")
	key = decorativeSymbolsRegex.ReplaceAllString(key, "")
	key = quotesRegex.ReplaceAllString(key, "")
	key = bracketsRegex.ReplaceAllString(key, "")
	key = repeatedSpacesRegex.ReplaceAllString(key, " ")
	key = strings.TrimSpace(key)

	if n.enableDebugLogging {
		log.Printf("[NORMALIZE] %q (brand %q) -> %q", title, brand, key)
	}
	return key
}

// stripBrand removes the supplied brand substring case-insensitively, or the
// first heuristically-detected brand span when no brand is known.
func (n *TitleNormalizer) stripBrand(title, brand string) string {
	if brand != "" {
		lowerTitle := strings.ToLower(title)
		lowerBrand := strings.ToLower(brand)
		if idx := strings.Index(lowerTitle, lowerBrand); idx >= 0 {
			return title[:idx] + title[idx+len(lowerBrand):]
		}
		return title
	}

	loc := brandSpanRegex.FindStringSubmatchIndex(title)
	if loc == nil {
		return title
	}
	// Remove the captured span only, keeping the separating whitespace.
	return title[:loc[2]] + title[loc[3]:]
}
