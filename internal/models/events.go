package models

// OrderEvent is published to the order.events queue on creation and on every
// status change.
type OrderEvent struct {
	OrderID    string           `json:"order_id"`
	CustomerID string           `json:"customer_id"`
	Status     string           `json:"status"`
	Total      float64          `json:"total"`
	Message    string           `json:"message"`
	Items      []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// InventoryUpdateEvent adjusts product stock (positive = restock).
type InventoryUpdateEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
