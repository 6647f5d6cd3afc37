package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skinpro/backend/internal/catalog"
	"github.com/skinpro/backend/internal/domain"
	"github.com/skinpro/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender    *usecase.RecommendService
	catalog        *catalog.Catalog
	requestTimeout time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender *usecase.RecommendService, cat *catalog.Catalog, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}
	return &Handler{
		recommender:    recommender,
		catalog:        cat,
		requestTimeout: requestTimeout,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skinpro-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the unique product names in catalog order, for
// populating the UI's reference-product dropdown
func (h *Handler) ListProducts(c *gin.Context) {
	names := h.catalog.Names()
	c.JSON(http.StatusOK, gin.H{
		"products": names,
		"count":    len(names),
	})
}

// RecommendByFilter handles filter-based recommendation requests
func (h *Handler) RecommendByFilter(c *gin.Context) {
	var req domain.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skinType is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	results, err := h.recommender.RecommendByFilter(ctx, req.ProductName, req.SkinType, req.Scent, req.TopN)
	h.respond(c, results, err)
}

// RecommendByProduct handles product-based recommendation requests
func (h *Handler) RecommendByProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	results, err := h.recommender.RecommendByProduct(ctx, req.ProductName, req.TopN)
	h.respond(c, results, err)
}

// respond renders a ranked list. No-match outcomes and recovered ranking
// failures both render as an empty list so the UI shows "no results"
// rather than an error page; the latter additionally logs a warning.
func (h *Handler) respond(c *gin.Context, results []domain.RankedProduct, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoMatches):
			// Legitimately empty result
		case errors.Is(err, domain.ErrRankingFailed):
			log.Printf("[HTTP] WARNING: %v", err)
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			log.Printf("[HTTP] WARNING: recommendation failed: %v", err)
		}
		results = nil
	}

	if results == nil {
		results = []domain.RankedProduct{}
	}

	c.JSON(http.StatusOK, gin.H{
		"products": results,
		"count":    len(results),
	})
}
