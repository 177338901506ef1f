package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/koshyk-app/backend/internal/domain"
)

// FetchConfig holds configuration for a scraping run.
type FetchConfig struct {
	PageCount  int
	PerPage    int
	BatchSize  int
	BatchDelay time.Duration
}

// FetchService runs a full scraping pass for a shop: walk the category tree,
// pull every listing page, normalize the records and persist the run. Categories
// are fetched in batches with a pause in between; the stores API bans clients
// that hammer it.
type FetchService struct {
	client  domain.StoreClient
	builder *CatalogBuilder
	writer  domain.CatalogWriter
	config  FetchConfig
}

// NewFetchService creates a new fetch service.
func NewFetchService(client domain.StoreClient, builder *CatalogBuilder, writer domain.CatalogWriter, config FetchConfig) *FetchService {
	if config.PageCount <= 0 {
		config.PageCount = 3
	}
	if config.PerPage <= 0 {
		config.PerPage = 100
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 15
	}
	if config.BatchDelay <= 0 {
		config.BatchDelay = 2500 * time.Millisecond
	}
	return &FetchService{
		client:  client,
		builder: builder,
		writer:  writer,
		config:  config,
	}
}

// FetchShop scrapes one store location and persists the normalized run under
// shopName. Only leaf categories carry listings; failed categories are logged
// and skipped so one bad category cannot sink a whole run.
func (s *FetchService) FetchShop(ctx context.Context, shopName string, shop domain.ShopInfo) error {
	categories, err := s.client.Categories(ctx, shop, false)
	if err != nil {
		return fmt.Errorf("failed to fetch categories for %s: %w", shopName, err)
	}

	var leaves []domain.CategoryInfo
	for _, category := range categories {
		leaves = append(leaves, category.Leaves()...)
	}
	log.Printf("[FETCH] %s: %d leaf categories", shopName, len(leaves))

	run := make(map[string][]domain.ProductRecord)
	var mutex sync.Mutex

	for start := 0; start < len(leaves); start += s.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + s.config.BatchSize
		if end > len(leaves) {
			end = len(leaves)
		}

		var wg sync.WaitGroup
		for _, category := range leaves[start:end] {
			wg.Add(1)
			go func(category domain.CategoryInfo) {
				defer wg.Done()
				records, err := s.fetchCategory(ctx, shop, category)
				if err != nil {
					log.Printf("[FETCH] %s: skipping category %s: %v", shopName, category.ID, err)
					return
				}
				mutex.Lock()
				run[category.ID] = records
				mutex.Unlock()
			}(category)
		}
		wg.Wait()

		if end < len(leaves) {
			time.Sleep(s.config.BatchDelay)
		}
	}

	normalized := s.builder.NormalizeRun(run)
	if err := s.writer.SaveRun(shopName, normalized); err != nil {
		return fmt.Errorf("failed to save run for %s: %w", shopName, err)
	}
	log.Printf("[FETCH] %s: run saved (%d categories)", shopName, len(normalized))
	return nil
}

// fetchCategory walks one category's listing pages until a page comes back
// empty or the page budget runs out.
func (s *FetchService) fetchCategory(ctx context.Context, shop domain.ShopInfo, category domain.CategoryInfo) ([]domain.ProductRecord, error) {
	var records []domain.ProductRecord
	for page := 1; page <= s.config.PageCount; page++ {
		pageRecords, err := s.client.CategoryProducts(ctx, shop, category, page, s.config.PerPage)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// A partial category is still worth keeping.
			log.Printf("[FETCH] category %s: page %d failed: %v", category.ID, page, err)
			break
		}
		if len(pageRecords) == 0 {
			break
		}
		records = append(records, pageRecords...)
	}
	return records, nil
}
