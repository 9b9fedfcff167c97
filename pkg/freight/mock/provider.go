// Package mock provides a mock rate provider implementation for testing.
package mock

import (
	"context"
	"sync/atomic"

	"github.com/belira/freight/pkg/freight"
	"github.com/shopspring/decimal"
)

// Provider is a mock rate provider for testing.
type Provider struct {
	name  string
	calls atomic.Int64

	// Err, when set, is returned by every GetRates call.
	Err error
	// Options, when set, overrides the default canned options.
	Options []freight.Option
	// OnGetRates, when set, takes over the call entirely.
	OnGetRates func(ctx context.Context, req *freight.RateRequest) ([]freight.Option, error)
}

// New creates a new mock provider.
func New(name string) *Provider {
	return &Provider{name: name}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.name
}

// Calls returns how many times GetRates has been invoked.
func (p *Provider) Calls() int {
	return int(p.calls.Load())
}

// GetRates returns mock shipping options.
func (p *Provider) GetRates(ctx context.Context, req *freight.RateRequest) ([]freight.Option, error) {
	p.calls.Add(1)

	if p.OnGetRates != nil {
		return p.OnGetRates(ctx, req)
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Options != nil {
		return p.Options, nil
	}

	return []freight.Option{
		{
			Carrier:          p.name,
			ServiceCode:      "STANDARD",
			ServiceName:      "Standard Delivery",
			Price:            decimal.NewFromFloat(19.90),
			DeliveryEstimate: freight.EstimateDays(5),
		},
		{
			Carrier:          p.name,
			ServiceCode:      "EXPRESS",
			ServiceName:      "Express Delivery",
			Price:            decimal.NewFromFloat(34.90),
			DeliveryEstimate: freight.EstimateDays(2),
		},
	}, nil
}
