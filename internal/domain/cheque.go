package domain

// ProductBuyInfo is one priced offer: the minimum integer multiple of the offer's
// pack that satisfies the requested size, and the resulting total.
type ProductBuyInfo struct {
	Product   ProductRecord `json:"product"`
	Quantity  int           `json:"quantity"`
	EndPrice  float64       `json:"end_price"`
	UnitPrice float64       `json:"unit_price,omitempty"`
}

// ProductsRequest pairs a buy preference with the offers found for it.
type ProductsRequest struct {
	Request         BuyPreference    `json:"request"`
	ProductBuyInfos []ProductBuyInfo `json:"product_buy_infos"`
}

// Cheque is the priced output basket for one shop. Constructed fresh per
// assembly run and never mutated afterwards, only serialized. Unmatched lists the
// preferences that yielded zero offers in this shop.
type Cheque struct {
	ID        string            `json:"id,omitempty"`
	Shop      string            `json:"shop"`
	BuyList   []ProductsRequest `json:"buy_list"`
	Unmatched []BuyPreference   `json:"unmatched,omitempty"`
	EndPrice  float64           `json:"end_price"`
}

// ShopPick is the winning shop for one preference in a cross-shop reduction.
type ShopPick struct {
	Shop           string          `json:"shop"`
	ProductRequest ProductsRequest `json:"product_request"`
}

// MultiShopCheque aggregates the cheapest cross-shop selection per preference.
type MultiShopCheque struct {
	ID        string          `json:"id,omitempty"`
	BuyList   []ShopPick      `json:"buy_list"`
	Unmatched []BuyPreference `json:"unmatched,omitempty"`
	EndPrice  float64         `json:"end_price"`
}

// BasketResult is the complete output of one assembly run: a cheque per scanned
// shop, plus the cross-shop cheque when the request asked for one.
type BasketResult struct {
	Cheques   []Cheque         `json:"cheques"`
	MultiShop *MultiShopCheque `json:"multi_shop,omitempty"`
}
