package usecase

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/koshyk-app/backend/internal/domain"
)

// BasketConfig holds configuration for the basket service.
type BasketConfig struct {
	EnableDebugLogging bool
}

// BasketService assembles minimum-cost baskets from a frozen catalog snapshot.
// Each shop's subtree of the catalog is independent and read-only, so shops are
// scanned concurrently and the results merged by concatenation.
type BasketService struct {
	catalog            domain.CatalogRepository
	shops              domain.ShopRegistry
	resolver           *SizeResolver
	enableDebugLogging bool
}

// NewBasketService creates a new basket service.
func NewBasketService(catalog domain.CatalogRepository, shops domain.ShopRegistry, config BasketConfig) *BasketService {
	return &BasketService{
		catalog:            catalog,
		shops:              shops,
		resolver:           NewSizeResolver(config.EnableDebugLogging),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// shopFindings is everything one shop contributed to a run: the surviving offers
// per preference, in request order.
type shopFindings struct {
	shop     string
	requests []domain.ProductsRequest
}

// Assemble runs the full pipeline for a buy request: index the catalog per
// preference, compute quantities, reduce per shop and, when asked, across shops.
func (s *BasketService) Assemble(ctx context.Context, request domain.UserBuyRequest) (*domain.BasketResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	shops := s.targetShops(request)
	findings := make([]shopFindings, len(shops))

	var wg sync.WaitGroup
	for i, shop := range shops {
		wg.Add(1)
		go func(i int, shop string) {
			defer wg.Done()
			findings[i] = s.scanShop(ctx, shop, request.BuyList)
		}(i, shop)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.BasketResult{}
	for _, f := range findings {
		result.Cheques = append(result.Cheques, s.reduceShop(f))
	}
	if request.BuyLocationPreference == domain.MultiShopCheck {
		multi := s.reduceAcrossShops(request.BuyList, result.Cheques)
		result.MultiShop = &multi
	}
	return result, nil
}

// targetShops returns the union of the request's shop filters in a stable,
// deterministic order. A preference with no shop filter targets every shop in
// the registry.
func (s *BasketService) targetShops(request domain.UserBuyRequest) []string {
	seen := make(map[string]bool)
	for _, preference := range request.BuyList {
		if len(preference.ShopFilter) == 0 {
			for _, name := range s.shops.Names() {
				seen[name] = true
			}
			continue
		}
		for _, shop := range preference.ShopFilter {
			seen[shop] = true
		}
	}

	shops := make([]string, 0, len(seen))
	for shop := range seen {
		shops = append(shops, shop)
	}
	sort.Strings(shops)
	return shops
}

// scanShop is the index phase for one shop: walk the navigator for keys matching
// each preference, load the hit categories once, and collect the surviving
// offers with their purchase quantity.
func (s *BasketService) scanShop(ctx context.Context, shop string, preferences []domain.BuyPreference) shopFindings {
	findings := shopFindings{shop: shop}

	navigator, err := s.catalog.Navigator(shop)
	if err != nil {
		log.Printf("[BASKET] shop %q has no catalog data: %v", shop, err)
		for _, preference := range preferences {
			if preferenceTargets(preference, shop) {
				findings.requests = append(findings.requests, domain.ProductsRequest{Request: preference})
			}
		}
		return findings
	}

	navigatorKeys := make([]string, 0, len(navigator))
	for key := range navigator {
		navigatorKeys = append(navigatorKeys, key)
	}
	sort.Strings(navigatorKeys)

	categoryCache := make(map[string]map[string]domain.ProductRecord)

	for _, preference := range preferences {
		if ctx.Err() != nil {
			return findings
		}
		if !preferenceTargets(preference, shop) {
			continue
		}

		var offers []domain.ProductRecord
		seenOffers := make(map[string]bool)
		examined := make(map[string]bool)
		for _, key := range navigatorKeys {
			if !tokenMatch(key, preference.TitleFilter) {
				continue
			}
			for _, categoryID := range navigator[key] {
				if examined[categoryID] {
					continue
				}
				examined[categoryID] = true

				products, ok := categoryCache[categoryID]
				if !ok {
					products, err = s.catalog.CategoryProducts(shop, categoryID)
					if err != nil {
						log.Printf("[BASKET] failed to load category %s of shop %q: %v", categoryID, shop, err)
						products = nil
					}
					categoryCache[categoryID] = products
				}

				for _, product := range products {
					if !tokenMatch(product.MatchKey, preference.TitleFilter) {
						continue
					}
					if !brandAllowed(product, preference.BrandFilter) {
						continue
					}
					offerID := product.Slug
					if offerID == "" {
						offerID = product.Title
					}
					if seenOffers[offerID] {
						continue
					}
					seenOffers[offerID] = true
					offers = append(offers, product)
				}
			}
		}

		// Offers are collected from map iteration; order them before the
		// quantity phase so every run is reproducible.
		sort.Slice(offers, func(i, j int) bool { return offers[i].Title < offers[j].Title })

		buyInfos := make([]domain.ProductBuyInfo, 0, len(offers))
		for _, offer := range offers {
			buyInfos = append(buyInfos, s.buyInfo(offer, preference.WeightFilter))
		}

		if s.enableDebugLogging {
			log.Printf("[BASKET] shop %q: %d offers for title filter %q", shop, len(buyInfos), preference.TitleFilter)
		}
		findings.requests = append(findings.requests, domain.ProductsRequest{
			Request:         preference,
			ProductBuyInfos: buyInfos,
		})
	}
	return findings
}

// buyInfo is the quantity phase for one offer: the minimum integer multiple of
// the offer's pack that meets or exceeds the requested size, or one pack when no
// size was requested. The weight filter never excludes an offer.
func (s *BasketService) buyInfo(offer domain.ProductRecord, weightFilter string) domain.ProductBuyInfo {
	requested := domain.Measurement{}
	if weightFilter != "" {
		requested = CanonicalizeMeasurement(ParseSize(weightFilter), domain.DimensionUnknown)
	}
	resolved := CanonicalizeMeasurement(s.resolver.Resolve(offer), requested.Dimension)

	quantity := 1
	if requested.Value > 0 && !resolved.IsZero() && resolved.Dimension == requested.Dimension {
		quantity = int(math.Ceil(requested.Value / (resolved.Value * float64(offer.PackSize()))))
		if quantity < 1 {
			quantity = 1
		}
	}
	return domain.ProductBuyInfo{
		Product:   offer,
		Quantity:  quantity,
		EndPrice:  offer.Price * float64(quantity),
		UnitPrice: UnitPrice(offer, resolved),
	}
}

// reduceShop keeps only the cheapest offer per preference and totals the cheque.
// Preferences with no surviving offers are reported as unmatched, never dropped.
func (s *BasketService) reduceShop(findings shopFindings) domain.Cheque {
	cheque := domain.Cheque{ID: uuid.NewString(), Shop: findings.shop}
	for _, request := range findings.requests {
		if len(request.ProductBuyInfos) == 0 {
			cheque.Unmatched = append(cheque.Unmatched, request.Request)
			continue
		}
		infos := make([]domain.ProductBuyInfo, len(request.ProductBuyInfos))
		copy(infos, request.ProductBuyInfos)
		sort.SliceStable(infos, func(i, j int) bool {
			if infos[i].EndPrice != infos[j].EndPrice {
				return infos[i].EndPrice < infos[j].EndPrice
			}
			return infos[i].UnitPrice < infos[j].UnitPrice
		})

		cheapest := infos[0]
		cheque.BuyList = append(cheque.BuyList, domain.ProductsRequest{
			Request:         request.Request,
			ProductBuyInfos: []domain.ProductBuyInfo{cheapest},
		})
		cheque.EndPrice += cheapest.EndPrice
	}
	return cheque
}

// reduceAcrossShops compares the per-shop winners for each distinct preference
// and keeps the globally cheapest. Cheques arrive in the deterministic shop scan
// order, so an exact price tie keeps the first shop encountered.
func (s *BasketService) reduceAcrossShops(preferences []domain.BuyPreference, cheques []domain.Cheque) domain.MultiShopCheque {
	type winner struct {
		shop string
		pick domain.ProductsRequest
	}
	winners := make(map[string]winner)

	for _, cheque := range cheques {
		for _, request := range cheque.BuyList {
			key := request.Request.Key()
			best, ok := winners[key]
			if !ok || request.ProductBuyInfos[0].EndPrice < best.pick.ProductBuyInfos[0].EndPrice {
				winners[key] = winner{shop: cheque.Shop, pick: request}
			}
		}
	}

	multi := domain.MultiShopCheque{ID: uuid.NewString()}
	seen := make(map[string]bool)
	for _, preference := range preferences {
		key := preference.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		best, ok := winners[key]
		if !ok {
			multi.Unmatched = append(multi.Unmatched, preference)
			continue
		}
		multi.BuyList = append(multi.BuyList, domain.ShopPick{Shop: best.shop, ProductRequest: best.pick})
		multi.EndPrice += best.pick.ProductBuyInfos[0].EndPrice
	}
	return multi
}

// preferenceTargets reports whether a preference asked to scan the given shop.
func preferenceTargets(preference domain.BuyPreference, shop string) bool {
	if len(preference.ShopFilter) == 0 {
		return true
	}
	for _, name := range preference.ShopFilter {
		if strings.EqualFold(name, shop) {
			return true
		}
	}
	return false
}

// tokenMatch reports whether the filter appears in the matching key as a run of
// whole tokens. Token-boundary matching keeps "сіль" from matching "сільський".
func tokenMatch(key, filter string) bool {
	filterTokens := strings.Fields(strings.ToLower(filter))
	if len(filterTokens) == 0 {
		return false
	}
	keyTokens := strings.Fields(strings.ToLower(key))
	for i := 0; i+len(filterTokens) <= len(keyTokens); i++ {
		matched := true
		for j, token := range filterTokens {
			if keyTokens[i+j] != token {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// brandAllowed applies the brand filter: an empty filter admits every offer,
// otherwise the offer's trademark must contain one of the requested brands.
func brandAllowed(product domain.ProductRecord, brandFilter []string) bool {
	if len(brandFilter) == 0 {
		return true
	}
	trademark := strings.ToLower(product.Brand())
	if trademark == "" {
		return false
	}
	for _, brand := range brandFilter {
		if strings.Contains(trademark, strings.ToLower(brand)) {
			return true
		}
	}
	return false
}
