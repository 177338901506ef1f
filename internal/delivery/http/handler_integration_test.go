package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/koshyk-app/backend/config"
	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// stubCatalog serves a fixed in-memory catalog: shop -> category -> title -> record.
type stubCatalog struct {
	data map[string]map[string]map[string]domain.ProductRecord
}

func (s *stubCatalog) Shops() ([]string, error) {
	shops := make([]string, 0, len(s.data))
	for shop := range s.data {
		shops = append(shops, shop)
	}
	return shops, nil
}

func (s *stubCatalog) Navigator(shop string) (domain.Navigator, error) {
	categories, ok := s.data[shop]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	navigator := make(domain.Navigator)
	for categoryID, products := range categories {
		for _, record := range products {
			navigator[record.MatchKey] = append(navigator[record.MatchKey], categoryID)
		}
	}
	return navigator, nil
}

func (s *stubCatalog) CategoryProducts(shop, categoryID string) (map[string]domain.ProductRecord, error) {
	categories, ok := s.data[shop]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	products, ok := categories[categoryID]
	if !ok {
		return nil, domain.ErrCatalogMiss
	}
	return products, nil
}

func testRegistry() domain.ShopRegistry {
	return domain.ShopRegistry{
		"atb": {{ID: 1, Location: "київ"}},
	}
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		data: map[string]map[string]map[string]domain.ProductRecord{
			"atb": {
				"cheese": {
					"Сир твердий Комо 250г": {
						Title:    "Сир твердий Комо 250г",
						MatchKey: "сир твердий",
						Price:    89.00,
						Weight:   "250г",
						Producer: domain.Producer{Trademark: "Комо"},
					},
				},
			},
		},
	}
}

// setupTestRouter creates a test router backed by a stub catalog
func setupTestRouter() *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	basketService := usecase.NewBasketService(testCatalog(), testRegistry(), usecase.BasketConfig{})
	handler := NewHandler(basketService, testRegistry())

	return SetupRouter(cfg, handler)
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "koshyk-backend" {
		t.Errorf("service = %v, want koshyk-backend", response["service"])
	}
}

func TestListShopsEndpoint(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/api/v1/shops", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response struct {
		Shops []struct {
			Name      string   `json:"name"`
			Locations []string `json:"locations"`
		} `json:"shops"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Shops) != 1 {
		t.Fatalf("got %d shops, want 1", len(response.Shops))
	}
	if response.Shops[0].Name != "atb" {
		t.Errorf("shop name = %s, want atb", response.Shops[0].Name)
	}
	if len(response.Shops[0].Locations) != 1 || response.Shops[0].Locations[0] != "київ" {
		t.Errorf("locations = %v, want [київ]", response.Shops[0].Locations)
	}
}

func TestAssembleBasketEndpoint(t *testing.T) {
	t.Run("assembles a basket for a valid request", func(t *testing.T) {
		router := setupTestRouter()

		payload := `{"buy_list":[{"title_filter":"сир твердий"}]}`
		req, _ := http.NewRequest("POST", "/api/v1/basket", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var result domain.BasketResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(result.Cheques) != 1 {
			t.Fatalf("got %d cheques, want 1", len(result.Cheques))
		}
		cheque := result.Cheques[0]
		if cheque.Shop != "atb" {
			t.Errorf("cheque shop = %s, want atb", cheque.Shop)
		}
		if cheque.EndPrice != 89.00 {
			t.Errorf("cheque end price = %v, want 89.00", cheque.EndPrice)
		}
		if result.MultiShop != nil {
			t.Error("multi-shop cheque present without multi_shop_check preference")
		}
	})

	t.Run("returns multi-shop cheque when asked", func(t *testing.T) {
		router := setupTestRouter()

		payload := `{"buy_list":[{"title_filter":"сир твердий"}],"buy_location_preference":"multi_shop_check"}`
		req, _ := http.NewRequest("POST", "/api/v1/basket", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result domain.BasketResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if result.MultiShop == nil {
			t.Fatal("multi-shop cheque missing")
		}
		if result.MultiShop.EndPrice != 89.00 {
			t.Errorf("multi-shop end price = %v, want 89.00", result.MultiShop.EndPrice)
		}
	})

	t.Run("returns 400 for empty buy list", func(t *testing.T) {
		router := setupTestRouter()

		payload := `{"buy_list":[]}`
		req, _ := http.NewRequest("POST", "/api/v1/basket", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		router := setupTestRouter()

		payload := `{invalid json}`
		req, _ := http.NewRequest("POST", "/api/v1/basket", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 501 when assembly is not configured", func(t *testing.T) {
		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
		}
		handler := NewHandler(nil, testRegistry())
		router := SetupRouter(cfg, handler)

		payload := `{"buy_list":[{"title_filter":"сир твердий"}]}`
		req, _ := http.NewRequest("POST", "/api/v1/basket", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotImplemented {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotImplemented)
		}
	})
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter()

	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
