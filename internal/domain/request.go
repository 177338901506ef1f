package domain

import (
	"sort"
	"strings"
)

// ShopLocationPreference selects how the assembled basket is reduced across shops.
type ShopLocationPreference string

const (
	// IsolateShopsCheck produces one cheque per shop.
	IsolateShopsCheck ShopLocationPreference = "isolate_shops_check"
	// MultiShopCheck additionally reduces to the globally cheapest offer per preference.
	MultiShopCheck ShopLocationPreference = "multi_shop_check"
)

// BuyPreference is one requested item: a title filter plus optional brand, size
// and shop constraints. The weight filter never excludes offers, it only drives
// the purchased quantity.
type BuyPreference struct {
	TitleFilter  string   `json:"title_filter"`
	BrandFilter  []string `json:"brand_filter,omitempty"`
	WeightFilter string   `json:"weight_filter,omitempty"`
	ShopFilter   []string `json:"shop_filter,omitempty"`
}

// Key returns a canonical grouping key for cross-shop deduplication. Two
// preferences share a key iff all four fields are set-equal, so the order of the
// set-valued fields is irrelevant.
func (b BuyPreference) Key() string {
	brands := make([]string, len(b.BrandFilter))
	for i, brand := range b.BrandFilter {
		brands[i] = strings.ToLower(strings.TrimSpace(brand))
	}
	sort.Strings(brands)

	shops := make([]string, len(b.ShopFilter))
	for i, shop := range b.ShopFilter {
		shops[i] = strings.ToLower(strings.TrimSpace(shop))
	}
	sort.Strings(shops)

	parts := []string{
		strings.ToLower(strings.TrimSpace(b.TitleFilter)),
		strings.Join(brands, ","),
		strings.ToLower(strings.TrimSpace(b.WeightFilter)),
		strings.Join(shops, ","),
	}
	return strings.Join(parts, "|")
}

// UserBuyRequest is the shopper's input document.
type UserBuyRequest struct {
	BuyList               []BuyPreference        `json:"buy_list"`
	BuyLocationPreference ShopLocationPreference `json:"buy_location_preference,omitempty"`
}

// Validate rejects empty or self-contradictory requests before assembly starts.
func (r UserBuyRequest) Validate() error {
	if len(r.BuyList) == 0 {
		return ErrInvalidRequest
	}
	for _, preference := range r.BuyList {
		if strings.TrimSpace(preference.TitleFilter) == "" {
			return ErrInvalidRequest
		}
	}
	switch r.BuyLocationPreference {
	case "", IsolateShopsCheck, MultiShopCheck:
		return nil
	}
	return ErrInvalidRequest
}
