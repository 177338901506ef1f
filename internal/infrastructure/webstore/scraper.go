package webstore

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/koshyk-app/backend/internal/domain"
)

// Scraper implements domain.StoreClient over a storefront's HTML pages, for
// shops that expose no JSON listings API. It understands the markup the zakaz
// storefronts render: a category menu on the landing page, category cards for
// subcategories and product tiles on the listing pages.
type Scraper struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

var _ domain.StoreClient = (*Scraper)(nil)

// NewScraper creates a new HTML scraper for one storefront.
func NewScraper(baseURL string) *Scraper {
	return &Scraper{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetDebug enables page-level logging.
func (s *Scraper) SetDebug(debug bool) {
	s.debug = debug
}

var (
	priceCleanupRegex = regexp.MustCompile(`[^\d.,]`)
	// Sizes render as "за 1кг" or "за 1 л" on the tile.
	sizePrefixRegex = regexp.MustCompile(`\s*за\s*`)
)

// Categories walks the storefront's category menu and, per category, the
// subcategory cards of its landing page. The storefront addresses one store and
// has no popularity filter, so shop and popular are ignored.
func (s *Scraper) Categories(ctx context.Context, shop domain.ShopInfo, popular bool) ([]domain.CategoryInfo, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL)
	if err != nil {
		return nil, err
	}

	var categories []domain.CategoryInfo
	doc.Find(".CategoriesMenuListItem").Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.AttrOr("title", ""))
		href, _ := item.Find(".CategoriesMenuListItem__link").Attr("href")
		if title == "" || href == "" {
			return
		}
		categories = append(categories, domain.CategoryInfo{
			ID:    href,
			Title: title,
			Slug:  slugFromPath(href),
		})
	})

	for i := range categories {
		children, err := s.subcategories(ctx, categories[i].ID)
		if err != nil {
			log.Printf("[WEBSTORE] failed to read subcategories of %s: %v", categories[i].ID, err)
			continue
		}
		categories[i].Children = children
	}

	if s.debug {
		log.Printf("[WEBSTORE] %s: %d top-level categories", s.baseURL, len(categories))
	}
	return categories, nil
}

// subcategories parses the category cards of one category's landing page. An
// empty result means the category is its own leaf.
func (s *Scraper) subcategories(ctx context.Context, categoryPath string) ([]domain.CategoryInfo, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL+categoryPath)
	if err != nil {
		return nil, err
	}

	var children []domain.CategoryInfo
	doc.Find(".CategoriesBox__listItem").Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(".CategoryCard__title").Text())
		href, _ := item.Find(".CategoryCard").Attr("href")
		if title == "" || href == "" {
			return
		}
		children = append(children, domain.CategoryInfo{
			ID:    href,
			Title: title,
			Slug:  slugFromPath(href),
		})
	})
	return children, nil
}

// CategoryProducts fetches one listing page of a category. The storefront fixes
// its own page size, so perPage is ignored; pages beyond the pagination block
// yield no records, which ends the caller's page walk.
func (s *Scraper) CategoryProducts(ctx context.Context, shop domain.ShopInfo, category domain.CategoryInfo, page, perPage int) ([]domain.ProductRecord, error) {
	pageURL := fmt.Sprintf("%s%s?page=%d", s.baseURL, category.ID, page)

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if page > s.pageCount(doc) {
		return nil, nil
	}

	records := s.parseTiles(doc)
	if s.debug {
		log.Printf("[WEBSTORE] %s page %d: %d listings", category.ID, page, len(records))
	}
	return records, nil
}

// fetchDocument executes an HTTP GET and parses the body.
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", "uk")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrStoreAPIFailure, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// parseTiles extracts the listings from the product tiles of a parsed page.
func (s *Scraper) parseTiles(doc *goquery.Document) []domain.ProductRecord {
	var records []domain.ProductRecord

	doc.Find(".ProductsBox__listItem").EachWithBreak(func(_ int, tile *goquery.Selection) bool {
		if tile.Find(".ProductTile_withOpacity").Length() > 0 {
			// Out-of-stock tiles sort to the tail; nothing sellable follows.
			return false
		}

		title := strings.TrimSpace(tile.Find(".ProductTile__title").Text())
		price := parsePrice(tile.Find(".Price__value_caption").Text())
		size := sizePrefixRegex.ReplaceAllString(strings.TrimSpace(tile.Find(".ProductTile__weight").Text()), "")
		href, _ := tile.Find(".ProductTile").Attr("href")

		record := domain.ProductRecord{
			Title:  title,
			Price:  price,
			Weight: strings.ReplaceAll(size, " ", ""),
			Slug:   slugFromPath(href),
			WebURL: s.baseURL + href,
		}
		if title == "" || price <= 0 {
			log.Printf("[WEBSTORE] skipping malformed tile (title %q, price %v)", title, price)
			return true
		}
		records = append(records, record)
		return true
	})

	return records
}

// pageCount reads the pagination block of a listing page; a missing block
// means a single page.
func (s *Scraper) pageCount(doc *goquery.Document) int {
	last := doc.Find(".Pagination__item").Last().Text()
	count, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// parsePrice turns "43,90 грн" into 43.90.
func parsePrice(text string) float64 {
	cleaned := priceCleanupRegex.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// slugFromPath derives a stable identifier from the last segment of a link.
func slugFromPath(href string) string {
	trimmed := strings.TrimRight(href, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}
