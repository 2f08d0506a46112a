package shipping

import (
	"fmt"

	"storefront/internal/models"
)

// Choose picks a strategy from the order's aggregates. High-value orders go
// by drone, mid-value or small orders go fast, everything else economic.
// Used only when the caller does not pick a strategy explicitly.
func Choose(o *models.Order) models.ShippingStrategy {
	subtotal := o.Subtotal()
	switch {
	case subtotal > 2000:
		return Drone{}
	case subtotal > 1000 || o.ItemCount() <= 2:
		return Fast{}
	default:
		return Economic{}
	}
}

// ByName resolves an explicitly requested strategy.
func ByName(name string) (models.ShippingStrategy, error) {
	switch name {
	case "fast":
		return Fast{}, nil
	case "economic":
		return Economic{}, nil
	case "drone":
		return Drone{}, nil
	}
	return nil, fmt.Errorf("unknown shipping method %q", name)
}
