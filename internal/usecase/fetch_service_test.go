package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/koshyk-app/backend/internal/domain"
)

// fakeStoreClient serves a canned category tree and listing pages.
type fakeStoreClient struct {
	categories []domain.CategoryInfo
	pages      map[string][][]domain.ProductRecord
	failing    map[string]bool

	mutex sync.Mutex
	calls []string
}

func (f *fakeStoreClient) Categories(ctx context.Context, shop domain.ShopInfo, popular bool) ([]domain.CategoryInfo, error) {
	return f.categories, nil
}

func (f *fakeStoreClient) CategoryProducts(ctx context.Context, shop domain.ShopInfo, category domain.CategoryInfo, page, perPage int) ([]domain.ProductRecord, error) {
	f.mutex.Lock()
	f.calls = append(f.calls, category.ID)
	f.mutex.Unlock()

	if f.failing[category.ID] {
		return nil, domain.ErrStoreAPIFailure
	}
	pages := f.pages[category.ID]
	if page > len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

// fakeWriter records the last saved run.
type fakeWriter struct {
	shop string
	run  map[string][]domain.ProductRecord
}

func (f *fakeWriter) SaveRun(shop string, run map[string][]domain.ProductRecord) error {
	f.shop = shop
	f.run = run
	return nil
}

func fetchFixtureClient() *fakeStoreClient {
	return &fakeStoreClient{
		categories: []domain.CategoryInfo{
			{ID: "dairy", Children: []domain.CategoryInfo{
				{ID: "milk"},
				{ID: "cheese"},
			}},
		},
		pages: map[string][][]domain.ProductRecord{
			"milk": {
				{{Title: "Молоко незбиране Селянське 950г", Price: 43.90, Weight: "950г"}},
				{{Title: "Молоко пряжене Ферма 500г", Price: 30.00, Weight: "500г"}},
			},
			"cheese": {
				{
					{Title: "Сир твердий Комо 250г", Price: 89.00, Weight: "250г"},
					{Title: "", Price: 10.00},
				},
			},
		},
	}
}

func testFetchService(client *fakeStoreClient, writer *fakeWriter) *FetchService {
	builder := NewCatalogBuilder(NewTitleNormalizer(false))
	return NewFetchService(client, builder, writer, FetchConfig{
		PageCount:  5,
		PerPage:    100,
		BatchSize:  2,
		BatchDelay: time.Millisecond,
	})
}

func TestFetchShopPersistsNormalizedRun(t *testing.T) {
	client := fetchFixtureClient()
	writer := &fakeWriter{}
	service := testFetchService(client, writer)

	err := service.FetchShop(context.Background(), "novus", domain.ShopInfo{ID: 48201070})
	if err != nil {
		t.Fatalf("FetchShop() error = %v", err)
	}

	if writer.shop != "novus" {
		t.Errorf("saved shop = %q, want novus", writer.shop)
	}
	if len(writer.run) != 2 {
		t.Fatalf("saved %d categories, want 2 (only leaves fetched)", len(writer.run))
	}

	milk := writer.run["milk"]
	if len(milk) != 2 {
		t.Fatalf("milk category has %d records, want 2 (both pages walked)", len(milk))
	}
	for _, record := range milk {
		if record.MatchKey == "" {
			t.Errorf("record %q saved without a matching key", record.Title)
		}
		if record.CategoryID != "milk" {
			t.Errorf("record %q has category %q, want milk", record.Title, record.CategoryID)
		}
	}

	if len(writer.run["cheese"]) != 1 {
		t.Errorf("cheese category has %d records, want 1 (titleless record dropped)", len(writer.run["cheese"]))
	}
}

func TestFetchShopStopsAtEmptyPage(t *testing.T) {
	client := fetchFixtureClient()
	writer := &fakeWriter{}
	service := testFetchService(client, writer)

	if err := service.FetchShop(context.Background(), "novus", domain.ShopInfo{ID: 48201070}); err != nil {
		t.Fatalf("FetchShop() error = %v", err)
	}

	// milk has 2 pages of data and a page budget of 5: the walk must stop at
	// the first empty page, i.e. 3 calls, not 5.
	milkCalls := 0
	for _, id := range client.calls {
		if id == "milk" {
			milkCalls++
		}
	}
	if milkCalls != 3 {
		t.Errorf("milk fetched %d times, want 3", milkCalls)
	}
}

func TestFetchShopSkipsFailingCategory(t *testing.T) {
	client := fetchFixtureClient()
	client.failing = map[string]bool{"milk": true}
	writer := &fakeWriter{}
	service := testFetchService(client, writer)

	err := service.FetchShop(context.Background(), "novus", domain.ShopInfo{ID: 48201070})
	if err != nil {
		t.Fatalf("FetchShop() error = %v, want run to survive one bad category", err)
	}

	if _, ok := writer.run["milk"]; ok {
		t.Error("failing category must be absent from the saved run")
	}
	if len(writer.run["cheese"]) != 1 {
		t.Error("healthy category must still be saved")
	}
}

func TestFetchShopHonorsContextCancellation(t *testing.T) {
	client := fetchFixtureClient()
	writer := &fakeWriter{}
	service := testFetchService(client, writer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.FetchShop(ctx, "novus", domain.ShopInfo{ID: 48201070})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FetchShop() error = %v, want context.Canceled", err)
	}
}
