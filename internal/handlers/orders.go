package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/shipping"
)

type OrderHandler struct {
	svc       *service.OrderService
	customers *CustomerStore
	catalog   *cache.CatalogCache
	log       *zap.SugaredLogger

	mu     sync.RWMutex
	orders map[string]*models.Order
}

func NewOrderHandler(svc *service.OrderService, customers *CustomerStore, catalog *cache.CatalogCache, log *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		svc:       svc,
		customers: customers,
		catalog:   catalog,
		log:       log,
		orders:    make(map[string]*models.Order),
	}
}

type createOrderRequest struct {
	CustomerID string                   `json:"customer_id" binding:"required"`
	Items      []createOrderItemRequest `json:"items" binding:"required"`
	Shipping   string                   `json:"shipping"`
	Note       string                   `json:"note"`
}

type createOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// orderResponse renders an order for callers, including the computed totals
// and the shipping method name the core keeps behind an interface.
func orderResponse(o *models.Order) gin.H {
	resp := gin.H{
		"id":            o.ID,
		"status":        o.Status,
		"items":         o.Items,
		"subtotal":      o.Subtotal(),
		"shipping_cost": o.ShippingCost,
		"total":         o.Total(),
		"created_at":    o.CreatedAt,
	}
	if o.Customer != nil {
		resp["customer_id"] = o.Customer.ID
	}
	if o.Shipping != nil {
		resp["shipping_method"] = o.Shipping.Name()
	}
	if o.TrackingCode != "" {
		resp["tracking_code"] = o.TrackingCode
	}
	if o.DeliveryEstimate != nil {
		resp["delivery_estimate"] = o.DeliveryEstimate
	}
	if o.Note != "" {
		resp["note"] = o.Note
	}
	return resp
}

// CreateOrder creates a new order with all-or-nothing stock reservation
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one item"})
		return
	}

	customer := h.customers.Get(req.CustomerID)
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	var strategy models.ShippingStrategy
	if req.Shipping != "" {
		var err error
		strategy, err = shipping.ByName(req.Shipping)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	reqs := make([]service.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		reqs = append(reqs, service.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.svc.CreateOrder(customer, reqs, strategy, req.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.mu.Lock()
	h.orders[order.ID] = order
	h.mu.Unlock()

	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.Product.ID)
	}
	h.catalog.Invalidate(c.Request.Context(), ids...)

	c.JSON(http.StatusCreated, orderResponse(order))
}

// GetOrder returns a single order
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order := h.lookup(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// UpdateOrderStatus transitions an order to a new status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	order := h.lookup(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetStatus(order, models.OrderStatus(req.Status)); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// AddOrderItem reserves one more line on an existing order
func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	order := h.lookup(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	var req createOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.AddLine(order, req.ProductID, req.Quantity); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), req.ProductID)
	c.JSON(http.StatusOK, orderResponse(order))
}

// RemoveOrderItem releases a line and its reserved stock
func (h *OrderHandler) RemoveOrderItem(c *gin.Context) {
	order := h.lookup(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	productID := c.Param("productID")
	if err := h.svc.RemoveLine(order, productID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), productID)
	c.JSON(http.StatusOK, orderResponse(order))
}

func (h *OrderHandler) lookup(id string) *models.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.orders[id]
}

func (h *OrderHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorw("order operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
