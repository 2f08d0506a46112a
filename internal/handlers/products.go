package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cache"
	"storefront/internal/inventory"
	"storefront/internal/models"
)

type ProductHandler struct {
	registry *inventory.Registry
	catalog  *cache.CatalogCache
	log      *zap.SugaredLogger
}

func NewProductHandler(registry *inventory.Registry, catalog *cache.CatalogCache, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{registry: registry, catalog: catalog, log: log}
}

// HealthCheck returns server status
func (h *ProductHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "storefront"})
}

// ListProducts returns all products, optionally filtered by ?category=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if categoryParam := c.Query("category"); categoryParam != "" {
		category, err := models.ParseCategory(categoryParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, h.catalog.ListByCategory(c.Request.Context(), category))
		return
	}

	c.JSON(http.StatusOK, h.catalog.List(c.Request.Context()))
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProduct registers a new product (or overwrites an existing id)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := models.NewProduct(req.ID, req.Name, req.Price, category, req.Stock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.registry.Register(product)
	h.catalog.Invalidate(c.Request.Context(), product.ID)

	h.log.Infow("product registered", "product", product.ID, "stock", product.Stock)
	c.JSON(http.StatusCreated, product)
}

// RestockProduct increases a product's stock
func (h *ProductHandler) RestockProduct(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restock quantity must be positive"})
		return
	}

	id := c.Param("id")
	if !h.registry.Adjust(id, req.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	h.catalog.Invalidate(c.Request.Context(), id)

	h.log.Infow("product restocked", "product", id, "quantity", req.Quantity)
	c.JSON(http.StatusOK, h.registry.Get(id))
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if !h.registry.Remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	h.catalog.Invalidate(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}
