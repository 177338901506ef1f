package domain

// Producer identifies the trademark behind a listing, as reported by the store API.
type Producer struct {
	Trademark     string `json:"trademark,omitempty"`
	TrademarkSlug string `json:"trademark_slug,omitempty"`
}

// ProductRecord is one retailer listing. MatchKey is produced once by the title
// normalizer when the record is ingested and is immutable thereafter; Bundle means
// "this price buys Bundle physical units of the resolved measurement".
type ProductRecord struct {
	Title      string   `json:"title"`
	MatchKey   string   `json:"normalized_title,omitempty"`
	Price      float64  `json:"price"`
	Weight     string   `json:"weight,omitempty"`
	Volume     float64  `json:"volume,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Bundle     int      `json:"bundle,omitempty"`
	Producer   Producer `json:"producer"`
	CategoryID string   `json:"category_id,omitempty"`
	ShopID     string   `json:"shop_id,omitempty"`
	Slug       string   `json:"slug,omitempty"`
	WebURL     string   `json:"web_url,omitempty"`
}

// PackSize returns the bundle count, treating the zero value as a single pack.
func (p ProductRecord) PackSize() int {
	if p.Bundle > 1 {
		return p.Bundle
	}
	return 1
}

// Brand returns the producer trademark, if any.
func (p ProductRecord) Brand() string {
	return p.Producer.Trademark
}

// ShopCatalog maps a matching key to the offers sharing it within one shop.
type ShopCatalog map[string][]ProductRecord

// Navigator maps a matching key to the category identifiers it was seen in,
// letting basket assembly avoid a full catalog scan.
type Navigator map[string][]string

// CategoryInfo is one node of a shop's category tree.
type CategoryInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	IsPopular   bool           `json:"is_popular,omitempty"`
	Slug        string         `json:"slug,omitempty"`
	Children    []CategoryInfo `json:"children,omitempty"`
}

// Leaves returns the leaf categories of the subtree rooted at c, in tree order.
func (c CategoryInfo) Leaves() []CategoryInfo {
	if len(c.Children) == 0 {
		return []CategoryInfo{c}
	}
	var leaves []CategoryInfo
	for _, child := range c.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
