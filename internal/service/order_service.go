// Package service orchestrates order creation and lifecycle against the
// inventory registry.
package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/inventory"
	"storefront/internal/models"
	"storefront/internal/notification"
	"storefront/internal/shipping"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrNotFound          = errors.New("not found")
)

// LineRequest asks for a quantity of one product.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// OrderService builds orders with all-or-nothing stock reservation and drives
// status transitions. Mutations of an existing order are serialized through
// the service mutex.
type OrderService struct {
	mu       sync.Mutex
	registry *inventory.Registry
	notifier *notification.Dispatcher
	log      *zap.SugaredLogger
}

func NewOrderService(registry *inventory.Registry, notifier *notification.Dispatcher, log *zap.SugaredLogger) *OrderService {
	return &OrderService{registry: registry, notifier: notifier, log: log}
}

// CreateOrder reserves stock for every requested line and returns the new
// order. If any line cannot be reserved, no stock is consumed and
// ErrInsufficientStock is returned. Quantities are validated before any
// reservation is attempted. A nil strategy means auto-selection; duplicate
// product ids produce independent lines.
func (s *OrderService) CreateOrder(customer *models.Customer, reqs []LineRequest, strategy models.ShippingStrategy, note string) (*models.Order, error) {
	reservations := make([]inventory.Reservation, 0, len(reqs))
	products := make([]*models.Product, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrInvalidQuantity)
		}
		p := s.registry.Get(req.ProductID)
		if p == nil {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}
		products = append(products, p)
		reservations = append(reservations, inventory.Reservation{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	order := models.NewOrder(customer)

	if !s.registry.Reserve(reservations) {
		return nil, ErrInsufficientStock
	}

	for i, req := range reqs {
		order.Items = append(order.Items, models.OrderItem{
			Product:   products[i],
			Quantity:  req.Quantity,
			UnitPrice: products[i].Price,
		})
	}

	order.Note = note
	if strategy == nil {
		strategy = shipping.Choose(order)
	}
	order.Shipping = strategy
	order.ShippingCost = strategy.Cost(order)

	customer.AddOrder(order)

	s.log.Infow("order created",
		"order", order.ID, "customer", customer.ID,
		"lines", len(order.Items), "total", order.Total(), "shipping", strategy.Name())
	s.notifier.Dispatch(order, "order created")

	return order, nil
}

// SetStatus transitions an order to the target status. An unrecognized
// status fails with no mutation and no notification. Transitioning to
// shipped assigns a tracking code (once) and a delivery estimate before the
// notification goes out.
func (s *OrderService) SetStatus(order *models.Order, target models.OrderStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%q: %w", target, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := order.Status
	order.Status = target

	message := fmt.Sprintf("order status changed: %s -> %s", previous, target)
	if target == models.StatusShipped {
		if order.TrackingCode == "" && order.Shipping != nil {
			order.TrackingCode = shipping.GenerateTrackingCode()
		}
		if order.Shipping != nil {
			estimate := order.Shipping.EstimateDelivery(order)
			order.DeliveryEstimate = &estimate
		}
		if order.TrackingCode != "" {
			message += fmt.Sprintf(", tracking code %s", order.TrackingCode)
		}
		if order.DeliveryEstimate != nil {
			message += fmt.Sprintf(", estimated delivery %s", order.DeliveryEstimate.Format("02.01.2006 15:04"))
		}
	}

	s.log.Infow("order status changed", "order", order.ID, "from", previous, "to", target)
	s.notifier.Dispatch(order, message)

	return nil
}

// AddLine reserves stock for one more line on an existing order. The new
// line snapshots the current catalog price.
func (s *OrderService) AddLine(order *models.Order, productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %s: %w", productID, ErrInvalidQuantity)
	}
	p := s.registry.Get(productID)
	if p == nil {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Adjust(productID, -qty) {
		return ErrInsufficientStock
	}
	order.Items = append(order.Items, models.OrderItem{Product: p, Quantity: qty, UnitPrice: p.Price})
	return nil
}

// RemoveLine removes the first line holding the given product and restores
// exactly the reserved quantity to the registry.
func (s *OrderService) RemoveLine(order *models.Order, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range order.Items {
		if item.Product.ID == productID {
			s.registry.Adjust(productID, item.Quantity)
			order.Items = append(order.Items[:i], order.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("order %s has no line for product %s: %w", order.ID, productID, ErrNotFound)
}
