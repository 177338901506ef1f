package catalogstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/koshyk-app/backend/internal/domain"
)

const (
	rawProductsFile        = "raw_products_info.json"
	normalizedProductsFile = "normalized_products.json"
	navigatorFile          = "products_categories.json"
	productsListFile       = "products_list.json"
	brandListFile          = "brand_list.json"

	// catalogVariant separates delivery schemes within one shop directory.
	// Only the default scheme is scraped today.
	catalogVariant = "default"
)

// FileStore persists scraping runs as per-shop JSON file trees and serves them
// back as frozen snapshots. Reads go through a TTL cache so repeated basket
// assemblies do not touch the disk.
type FileStore struct {
	root     string
	cache    *snapshotCache
	collator *collate.Collator
}

// NewFileStore creates a file-backed catalog rooted at dataDir.
func NewFileStore(dataDir string, cacheTTL time.Duration) *FileStore {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &FileStore{
		root:     dataDir,
		cache:    newSnapshotCache(cacheTTL),
		collator: collate.New(language.Ukrainian),
	}
}

// SaveRun writes a finished scraping run for one shop: the raw dump, one
// normalized file per category, the navigator and the collated product and
// brand listings. Records must already carry their matching keys.
func (s *FileStore) SaveRun(shop string, categoryProducts map[string][]domain.ProductRecord) error {
	shopDir := filepath.Join(s.root, shop)
	variantDir := filepath.Join(shopDir, catalogVariant)
	if err := os.MkdirAll(variantDir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	if err := writeJSON(filepath.Join(shopDir, rawProductsFile), categoryProducts); err != nil {
		return err
	}

	navigator := make(domain.Navigator)
	productSet := make(map[string]struct{})
	brandSet := make(map[string]struct{})

	for categoryID, records := range categoryProducts {
		byTitle := make(map[string]domain.ProductRecord, len(records))
		for _, record := range records {
			byTitle[record.Title] = record
			if record.MatchKey != "" {
				productSet[record.MatchKey] = struct{}{}
				navigator[record.MatchKey] = appendUnique(navigator[record.MatchKey], categoryID)
			}
			if brand := record.Brand(); brand != "" {
				brandSet[brand] = struct{}{}
			}
		}

		categoryDir := filepath.Join(variantDir, categoryID)
		if err := os.MkdirAll(categoryDir, 0o755); err != nil {
			return fmt.Errorf("failed to create category directory: %w", err)
		}
		if err := writeJSON(filepath.Join(categoryDir, normalizedProductsFile), byTitle); err != nil {
			return err
		}
	}

	if err := writeJSON(filepath.Join(variantDir, navigatorFile), navigator); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(variantDir, productsListFile), s.collatedKeys(productSet)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(variantDir, brandListFile), s.collatedKeys(brandSet)); err != nil {
		return err
	}

	s.cache.invalidateShop(shop)
	log.Printf("[CATALOG] saved run for %s: %d categories", shop, len(categoryProducts))
	return nil
}

// Shops lists the shops with a saved run.
func (s *FileStore) Shops() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog root: %w", err)
	}

	var shops []string
	for _, entry := range entries {
		if entry.IsDir() {
			shops = append(shops, entry.Name())
		}
	}
	s.collator.SortStrings(shops)
	return shops, nil
}

// Navigator loads the matching-key index of one shop.
func (s *FileStore) Navigator(shop string) (domain.Navigator, error) {
	cacheKey := shop
	if cached, ok := s.cache.get(cacheKey); ok {
		return copyNavigator(cached.(domain.Navigator)), nil
	}

	if _, err := os.Stat(filepath.Join(s.root, shop)); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrShopNotFound, shop)
	}

	var navigator domain.Navigator
	path := filepath.Join(s.root, shop, catalogVariant, navigatorFile)
	if err := readJSON(path, &navigator); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no navigator for %s", domain.ErrCatalogMiss, shop)
		}
		return nil, err
	}

	s.cache.set(cacheKey, navigator)
	return copyNavigator(navigator), nil
}

// CategoryProducts loads one category of one shop, keyed by listing title.
func (s *FileStore) CategoryProducts(shop, categoryID string) (map[string]domain.ProductRecord, error) {
	cacheKey := shop + "/" + categoryID
	if cached, ok := s.cache.get(cacheKey); ok {
		return copyProducts(cached.(map[string]domain.ProductRecord)), nil
	}

	var products map[string]domain.ProductRecord
	path := filepath.Join(s.root, shop, catalogVariant, categoryID, normalizedProductsFile)
	if err := readJSON(path, &products); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrCatalogMiss, shop, categoryID)
		}
		return nil, err
	}

	s.cache.set(cacheKey, products)
	return copyProducts(products), nil
}

// collatedKeys returns the keys of a set in Ukrainian alphabetical order.
func (s *FileStore) collatedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	s.collator.SortStrings(keys)
	return keys
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	list = append(list, value)
	sort.Strings(list)
	return list
}

func copyNavigator(navigator domain.Navigator) domain.Navigator {
	clone := make(domain.Navigator, len(navigator))
	for key, categories := range navigator {
		clone[key] = append([]string(nil), categories...)
	}
	return clone
}

func copyProducts(products map[string]domain.ProductRecord) map[string]domain.ProductRecord {
	clone := make(map[string]domain.ProductRecord, len(products))
	for title, record := range products {
		clone[title] = record
	}
	return clone
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
