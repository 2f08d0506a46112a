package publisher

import (
	"encoding/json"
	"fmt"

	"storefront/internal/messaging"
	"storefront/internal/models"
)

const OrderEventsQueue = "order.events"

// OrderPublisher forwards order notifications to RabbitMQ. It is registered
// with the notification dispatcher as one more channel, so downstream
// consumers see the same events as the direct channels.
type OrderPublisher struct {
	mq *messaging.RabbitMQ
}

func NewOrderPublisher(mq *messaging.RabbitMQ) (*OrderPublisher, error) {
	if err := mq.DeclareQueue(OrderEventsQueue); err != nil {
		return nil, err
	}
	return &OrderPublisher{mq: mq}, nil
}

// Notify publishes the order snapshot and message as an OrderEvent.
func (p *OrderPublisher) Notify(order *models.Order, message string) error {
	event := models.OrderEvent{
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   order.Total(),
		Message: message,
	}
	if order.Customer != nil {
		event.CustomerID = order.Customer.ID
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, models.OrderItemEvent{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return p.mq.Publish(OrderEventsQueue, body)
}
