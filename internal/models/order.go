package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusCreated    OrderStatus = "created"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the recognized values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are expected from s.
// Transitions out of a terminal status are currently not rejected; a guarded
// transition table is the planned hardening.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ShippingStrategy is the per-order shipping policy: cost and delivery
// estimate depend on the order's contents.
type ShippingStrategy interface {
	Name() string
	Cost(o *Order) float64
	EstimateDelivery(o *Order) time.Time
}

// OrderItem couples a product with a quantity and the unit price frozen at
// reservation time. Later catalog price changes never affect it.
type OrderItem struct {
	Product   *Product `json:"product"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order aggregates reserved line items, a status, and a shipping selection.
// It is created and mutated only through the order service.
type Order struct {
	ID               string           `json:"id"`
	Customer         *Customer        `json:"-"`
	Items            []OrderItem      `json:"items"`
	Status           OrderStatus      `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	Shipping         ShippingStrategy `json:"-"`
	ShippingCost     float64          `json:"shipping_cost"`
	DeliveryEstimate *time.Time       `json:"delivery_estimate,omitempty"`
	TrackingCode     string           `json:"tracking_code,omitempty"`
	Note             string           `json:"note,omitempty"`
}

// NewOrder builds an empty order in the created state. The id is the first
// 8 characters of a UUID, uppercased.
func NewOrder(customer *Customer) *Order {
	return &Order{
		ID:        strings.ToUpper(uuid.New().String()[:8]),
		Customer:  customer,
		Status:    StatusCreated,
		CreatedAt: time.Now(),
	}
}

// Subtotal is the sum of line subtotals, excluding shipping.
func (o *Order) Subtotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the sum of line quantities.
func (o *Order) ItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Total is always recomputed, never cached.
func (o *Order) Total() float64 {
	return o.Subtotal() + o.ShippingCost
}

func (o *Order) String() string {
	return fmt.Sprintf("order #%s (%s) - %d items, total %.2f", o.ID, o.Status, len(o.Items), o.Total())
}
