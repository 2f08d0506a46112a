package models

// Customer is a buyer with an append-only order history. The history shares
// ownership of orders with their callers; orders are never removed from it.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Phone   string   `json:"phone,omitempty"`
	Orders  []*Order `json:"-"`
}

// AddOrder appends an order to the customer's history.
func (c *Customer) AddOrder(o *Order) {
	c.Orders = append(c.Orders, o)
}

// OrderByID returns the historical order with the given id, or nil.
func (c *Customer) OrderByID(id string) *Order {
	for _, o := range c.Orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
