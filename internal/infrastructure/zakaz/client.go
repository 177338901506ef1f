package zakaz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/koshyk-app/backend/internal/domain"
)

// Client talks to the zakaz-style stores API. Every store location is addressed
// by its numeric ID; listings are paginated per category.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new stores API client. ratePerSecond bounds the request
// rate across all categories of a scraping run; the API bans aggressive
// scrapers, so the default should stay conservative.
func NewClient(baseURL string, ratePerSecond float64, burst int) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// SetDebug enables request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET with the headers the API expects.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", "uk")
	req.Header.Set("User-Agent", "koshyk/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, err)
	}
	return resp, nil
}

// getJSON fetches a URL with rate limiting and up to 3 retries for transient
// failures, decoding the body into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[ZAKAZ] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: status 404", domain.ErrStoreAPIFailure)
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[ZAKAZ] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrStoreAPIFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
	return lastErr
}

// Categories fetches the category tree of a store location.
func (c *Client) Categories(ctx context.Context, shop domain.ShopInfo, popular bool) ([]domain.CategoryInfo, error) {
	endpoint := fmt.Sprintf("%s/%d/categories/", c.baseURL, shop.ID)
	if popular {
		endpoint += "popular"
	}

	var raw []rawCategory
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	categories := make([]domain.CategoryInfo, 0, len(raw))
	for _, r := range raw {
		categories = append(categories, r.toDomain())
	}
	if c.debug {
		log.Printf("[ZAKAZ] store %d: %d top-level categories", shop.ID, len(categories))
	}
	return categories, nil
}

// CategoryProducts fetches one listing page of a category.
func (c *Client) CategoryProducts(ctx context.Context, shop domain.ShopInfo, category domain.CategoryInfo, page, perPage int) ([]domain.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/%d/categories/%s/products/", c.baseURL, shop.ID, url.PathEscape(category.ID))
	params := url.Values{}
	params.Add("page", strconv.Itoa(page))
	params.Add("per_page", strconv.Itoa(perPage))
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var resp rawProductsResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.ProductRecord, 0, len(resp.Results))
	for _, raw := range resp.Results {
		record, err := raw.toDomain()
		if err != nil {
			log.Printf("[ZAKAZ] skipping malformed listing in category %s: %v", category.ID, err)
			continue
		}
		records = append(records, record)
	}
	if c.debug {
		log.Printf("[ZAKAZ] store %d category %s page %d: %d listings", shop.ID, category.ID, page, len(records))
	}
	return records, nil
}
