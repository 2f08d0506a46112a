package consumer

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/inventory"
	"storefront/internal/models"
)

// fakeAcknowledger records the outcome of each delivery.
type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func deliver(t *testing.T, c *RestockConsumer, ack *fakeAcknowledger, body []byte) {
	t.Helper()
	messages := make(chan amqp.Delivery, 1)
	messages <- amqp.Delivery{Acknowledger: ack, Body: body}
	close(messages)
	c.Process(messages)
}

func TestProcessAppliesRestock(t *testing.T) {
	registry := inventory.NewRegistry()
	p, err := models.NewProduct("A", "product A", 10, models.CategoryOther, 2)
	require.NoError(t, err)
	registry.Register(p)

	c := NewRestockConsumer(registry, zap.NewNop().Sugar())

	body, err := json.Marshal(models.InventoryUpdateEvent{ProductID: "A", Quantity: 5})
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	deliver(t, c, ack, body)

	assert.True(t, ack.acked)
	assert.Equal(t, 7, registry.Get("A").Stock)
}

func TestProcessDropsBadEvents(t *testing.T) {
	registry := inventory.NewRegistry()
	c := NewRestockConsumer(registry, zap.NewNop().Sugar())

	// Malformed payload: dropped without requeue.
	ack := &fakeAcknowledger{}
	deliver(t, c, ack, []byte("{not json"))
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)

	// Non-positive quantity: dropped without requeue.
	body, err := json.Marshal(models.InventoryUpdateEvent{ProductID: "A", Quantity: -3})
	require.NoError(t, err)
	ack = &fakeAcknowledger{}
	deliver(t, c, ack, body)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestProcessRequeuesUnknownProduct(t *testing.T) {
	registry := inventory.NewRegistry()
	c := NewRestockConsumer(registry, zap.NewNop().Sugar())

	body, err := json.Marshal(models.InventoryUpdateEvent{ProductID: "missing", Quantity: 5})
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	deliver(t, c, ack, body)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued, "restock before product registration should retry")
}
