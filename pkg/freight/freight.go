// Package freight provides shipping rate quotes aggregated from multiple
// carrier providers, with an in-memory quote cache in front.
package freight

import (
	"context"
)

// Provider defines the interface that all rate providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "correios", "melhorenvio").
	Name() string

	// GetRates returns normalized shipping options for a shipment.
	GetRates(ctx context.Context, req *RateRequest) ([]Option, error)
}
