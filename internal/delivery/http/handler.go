package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	basketService *usecase.BasketService
	shops         domain.ShopRegistry
}

// NewHandler creates a new HTTP handler
func NewHandler(basketService *usecase.BasketService, shops domain.ShopRegistry) *Handler {
	return &Handler{
		basketService: basketService,
		shops:         shops,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "koshyk-backend",
		"version": "1.0.0",
	})
}

// ListShops returns the supported shops and their locations
func (h *Handler) ListShops(c *gin.Context) {
	shops := make([]gin.H, 0, len(h.shops))
	for _, name := range h.shops.Names() {
		shops = append(shops, gin.H{
			"name":      name,
			"locations": h.shops.Locations(name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// AssembleBasket assembles a minimum-cost basket for a buy request
func (h *Handler) AssembleBasket(c *gin.Context) {
	if h.basketService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Basket assembly not configured",
		})
		return
	}

	var request domain.UserBuyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.basketService.Assemble(c.Request.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrStoreAPIFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Stores API temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "basket assembly failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
