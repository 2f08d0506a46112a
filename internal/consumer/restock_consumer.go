package consumer

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storefront/internal/inventory"
	"storefront/internal/models"
)

const RestockQueue = "inventory.restock"

// RestockConsumer applies externally published stock adjustments through the
// registry's adjust operation. Negative quantities are rejected here: stock
// only leaves the pool via reservations.
type RestockConsumer struct {
	registry *inventory.Registry
	log      *zap.SugaredLogger
}

func NewRestockConsumer(registry *inventory.Registry, log *zap.SugaredLogger) *RestockConsumer {
	return &RestockConsumer{registry: registry, log: log}
}

// Process handles deliveries until the channel closes. Malformed or invalid
// messages are dropped; adjustments against unknown products are requeued so
// a restock arriving before its product registration is retried.
func (c *RestockConsumer) Process(messages <-chan amqp.Delivery) {
	for msg := range messages {
		var event models.InventoryUpdateEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			c.log.Warnw("dropping malformed restock event", "error", err)
			msg.Nack(false, false)
			continue
		}

		if event.Quantity <= 0 {
			c.log.Warnw("dropping restock event with non-positive quantity",
				"product", event.ProductID, "quantity", event.Quantity)
			msg.Nack(false, false)
			continue
		}

		if !c.registry.Adjust(event.ProductID, event.Quantity) {
			c.log.Warnw("restock failed, requeueing", "product", event.ProductID)
			msg.Nack(false, true)
			continue
		}

		c.log.Infow("restocked", "product", event.ProductID, "quantity", event.Quantity)
		msg.Ack(false)
	}
}
