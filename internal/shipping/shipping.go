// Package shipping implements the shipping cost/ETA policies as a closed set
// of strategies behind models.ShippingStrategy.
package shipping

import (
	"math/rand"
	"time"

	"storefront/internal/models"
)

const trackingLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingCode returns a strategy-agnostic tracking code of two
// uppercase letters followed by eight digits.
func GenerateTrackingCode() string {
	code := make([]byte, 10)
	for i := 0; i < 2; i++ {
		code[i] = trackingLetters[rand.Intn(len(trackingLetters))]
	}
	for i := 2; i < 10; i++ {
		code[i] = byte('0' + rand.Intn(10))
	}
	return string(code)
}

// Fast delivers in 1-2 days. Base 50 plus 5 per item, with a 10% discount on
// orders above 1000.
type Fast struct{}

func (Fast) Name() string { return "fast" }

func (Fast) Cost(o *models.Order) float64 {
	cost := 50 + 5*float64(o.ItemCount())
	if o.Subtotal() > 1000 {
		cost *= 0.9
	}
	return cost
}

func (Fast) EstimateDelivery(o *models.Order) time.Time {
	days := 1 + rand.Intn(2)
	return time.Now().AddDate(0, 0, days)
}

// Economic delivers in 3-5 days. Flat 20, free above a 500 subtotal.
type Economic struct{}

func (Economic) Name() string { return "economic" }

func (Economic) Cost(o *models.Order) float64 {
	if o.Subtotal() > 500 {
		return 0
	}
	return 20
}

func (Economic) EstimateDelivery(o *models.Order) time.Time {
	days := 3 + rand.Intn(3)
	return time.Now().AddDate(0, 0, days)
}

// Drone delivers same day (1-6 hours) half the time, otherwise next day.
// Base 100 plus 10 per item.
type Drone struct{}

func (Drone) Name() string { return "drone" }

func (Drone) Cost(o *models.Order) float64 {
	return 100 + 10*float64(o.ItemCount())
}

func (Drone) EstimateDelivery(o *models.Order) time.Time {
	if rand.Intn(2) == 0 {
		hours := 1 + rand.Intn(6)
		return time.Now().Add(time.Duration(hours) * time.Hour)
	}
	return time.Now().AddDate(0, 0, 1)
}
