package domain

import "context"

// CatalogRepository provides read access to a finished scraping run. The data is
// a frozen snapshot: basket assembly never mutates what it reads.
type CatalogRepository interface {
	Shops() ([]string, error)
	Navigator(shop string) (Navigator, error)
	CategoryProducts(shop, categoryID string) (map[string]ProductRecord, error)
}

// CatalogWriter persists the output of a scraping run.
type CatalogWriter interface {
	SaveRun(shop string, categoryProducts map[string][]ProductRecord) error
}

// StoreClient fetches category trees and product listings from a retailer API.
type StoreClient interface {
	Categories(ctx context.Context, shop ShopInfo, popular bool) ([]CategoryInfo, error)
	CategoryProducts(ctx context.Context, shop ShopInfo, category CategoryInfo, page, perPage int) ([]ProductRecord, error)
}
