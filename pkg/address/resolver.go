package address

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ResolverConfig holds resolver tuning knobs.
type ResolverConfig struct {
	// ProviderTimeout bounds each provider call. Defaults to 5s.
	ProviderTimeout time.Duration
}

// Resolver turns a postal code into a normalized address despite any single
// provider being unreliable. Providers are tried in registration order; a
// provider failure is logged and swallowed until the chain is exhausted.
type Resolver struct {
	config    ResolverConfig
	providers []Provider
	logger    *otelzap.Logger
}

// NewResolver creates a resolver over an ordered provider chain.
func NewResolver(cfg ResolverConfig, providers []Provider, logger *otelzap.Logger) *Resolver {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 5 * time.Second
	}
	return &Resolver{
		config:    cfg,
		providers: providers,
		logger:    logger,
	}
}

// Providers returns the names of the chain, in priority order.
func (r *Resolver) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Resolve looks up a postal code, with or without formatting.
//
// Fails with ErrInvalidPostalCode before any network call when the input is
// not 8 digits, and with ErrAddressNotFound when every provider in the
// chain failed or returned nothing.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (*Address, error) {
	cep := NormalizeCEP(postalCode)
	if len(cep) != 8 {
		return nil, fmt.Errorf("%w: %q is not 8 digits", ErrInvalidPostalCode, postalCode)
	}

	for _, p := range r.providers {
		addr, err := r.lookupOne(ctx, p, cep)
		if err != nil {
			r.logger.Warn("Address provider failed",
				zap.String("provider", p.Name()),
				zap.String("cep", cep),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		r.logger.Debug("Address resolved",
			zap.String("provider", p.Name()),
			zap.String("cep", cep),
		)
		return addr, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, postalCode)
}

func (r *Resolver) lookupOne(ctx context.Context, p Provider, cep string) (*Address, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.config.ProviderTimeout)
	defer cancel()

	addr, err := p.Lookup(callCtx, cep)
	if err != nil {
		return nil, err
	}
	if addr == nil || addr.City == "" || addr.StateCode == "" {
		return nil, fmt.Errorf("%w: incomplete response", ErrAddressNotFound)
	}
	addr.PostalCode = cep
	return addr, nil
}
