package zakaz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/koshyk-app/backend/internal/domain"
)

// rawCategory is the wire shape of one category node.
type rawCategory struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	ImageURL  string        `json:"image_url"`
	IsPopular bool          `json:"is_popular"`
	Slug      string        `json:"slug"`
	Children  []rawCategory `json:"children"`
}

func (r rawCategory) toDomain() domain.CategoryInfo {
	category := domain.CategoryInfo{
		ID:        r.ID,
		Title:     r.Title,
		ImageURL:  r.ImageURL,
		IsPopular: r.IsPopular,
		Slug:      r.Slug,
	}
	if category.Slug == "" {
		category.Slug = r.ID
	}
	for _, child := range r.Children {
		category.Children = append(category.Children, child.toDomain())
	}
	return category
}

// rawProductsResponse is the wire shape of one listing page.
type rawProductsResponse struct {
	Results []rawProduct `json:"results"`
}

// rawProduct is the wire shape of one listing. The size-like fields arrive in
// inconsistent types across shops (weight as string or number, bundle absent or
// null), so everything is decoded leniently and validated afterwards.
type rawProduct struct {
	Title    string          `json:"title"`
	Price    float64         `json:"price"`
	Weight   json.RawMessage `json:"weight"`
	Volume   float64         `json:"volume"`
	Unit     string          `json:"unit"`
	Bundle   int             `json:"bundle"`
	Producer struct {
		Trademark     string `json:"trademark"`
		TrademarkSlug string `json:"trademark_slug"`
	} `json:"producer"`
	Slug   string `json:"slug"`
	WebURL string `json:"web_url"`
}

// toDomain validates a raw listing into a ProductRecord. Prices arrive in
// kopecks; a listing without a title or with a non-positive price is rejected
// instead of propagating downstream.
func (r rawProduct) toDomain() (domain.ProductRecord, error) {
	if strings.TrimSpace(r.Title) == "" {
		return domain.ProductRecord{}, fmt.Errorf("%w: empty title", domain.ErrMalformedRecord)
	}
	if r.Price <= 0 {
		return domain.ProductRecord{}, fmt.Errorf("%w: non-positive price for %q", domain.ErrMalformedRecord, r.Title)
	}
	if r.Bundle < 0 {
		return domain.ProductRecord{}, fmt.Errorf("%w: negative bundle for %q", domain.ErrMalformedRecord, r.Title)
	}

	return domain.ProductRecord{
		Title:  r.Title,
		Price:  r.Price / 100,
		Weight: decodeWeight(r.Weight),
		Volume: r.Volume,
		Unit:   r.Unit,
		Bundle: r.Bundle,
		Producer: domain.Producer{
			Trademark:     r.Producer.Trademark,
			TrademarkSlug: r.Producer.TrademarkSlug,
		},
		Slug:   r.Slug,
		WebURL: r.WebURL,
	}, nil
}

// decodeWeight accepts the weight field as a JSON string, a number or null and
// always yields the free-text form the size parser expects.
func decodeWeight(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return strconv.FormatFloat(asNumber, 'f', -1, 64)
	}
	return ""
}
