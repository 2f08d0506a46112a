package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/models"
)

// CustomerStore is the in-memory customer record set. Records live for the
// process lifetime.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[string]*models.Customer)}
}

func (s *CustomerStore) Add(c *models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

func (s *CustomerStore) Get(id string) *models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers[id]
}

type CustomerHandler struct {
	store *CustomerStore
}

func NewCustomerHandler(store *CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterCustomer creates a customer record
func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Address string `json:"address" binding:"required"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}

	customer := &models.Customer{
		ID:      strings.ToUpper(uuid.New().String()[:8]),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}
	h.store.Add(customer)

	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns a customer record
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer := h.store.Get(c.Param("id"))
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// ListCustomerOrders returns the customer's order history
func (h *CustomerHandler) ListCustomerOrders(c *gin.Context) {
	customer := h.store.Get(c.Param("id"))
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	orders := make([]gin.H, 0, len(customer.Orders))
	for _, o := range customer.Orders {
		orders = append(orders, orderResponse(o))
	}
	c.JSON(http.StatusOK, orders)
}
