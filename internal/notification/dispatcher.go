// Package notification fans order events out to registered channels.
package notification

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/models"
)

// Observer is one notification channel. A channel that cannot act (missing
// contact detail, unreachable backend) returns an error; it never blocks
// delivery to the other channels.
type Observer interface {
	Notify(order *models.Order, message string) error
}

// Dispatcher keeps an ordered set of distinct observers and invokes them
// synchronously, in registration order.
type Dispatcher struct {
	mu        sync.Mutex
	observers []Observer
	log       *zap.SugaredLogger
}

// NewDispatcher builds a dispatcher pre-registered with the email and SMS
// channels.
func NewDispatcher(log *zap.SugaredLogger) *Dispatcher {
	d := &Dispatcher{log: log}
	d.Register(NewEmailChannel(log))
	d.Register(NewSMSChannel(log))
	return d
}

// Register appends an observer. Registering the same observer again is a
// no-op.
func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

// Unregister removes an observer. Removing an absent observer is a no-op.
func (d *Dispatcher) Unregister(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// Dispatch timestamps the message and delivers it to every observer. A
// failing observer is logged and skipped; the remaining observers still run.
// Iteration happens over a snapshot so observers may register or unregister
// during dispatch.
func (d *Dispatcher) Dispatch(order *models.Order, message string) {
	d.mu.Lock()
	snapshot := make([]Observer, len(d.observers))
	copy(snapshot, d.observers)
	d.mu.Unlock()

	stamped := fmt.Sprintf("[%s] %s", time.Now().Format("02.01.2006 15:04:05"), message)
	for _, o := range snapshot {
		if err := o.Notify(order, stamped); err != nil {
			d.log.Warnw("notification channel failed", "order", order.ID, "error", err)
		}
	}
}
