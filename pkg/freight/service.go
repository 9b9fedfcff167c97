package freight

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ServiceConfig holds quote service configuration.
type ServiceConfig struct {
	// OriginPostalCode is the store's dispatch CEP.
	OriginPostalCode string
	// ProviderTimeout bounds each quote fan-out. Defaults to 5s.
	ProviderTimeout time.Duration
}

// Observer receives quote-flow events. Implementations feed metrics; the
// default discards everything.
type Observer interface {
	CacheHit()
	CacheMiss()
	ProviderError(provider string)
}

type nopObserver struct{}

func (nopObserver) CacheHit()              {}
func (nopObserver) CacheMiss()             {}
func (nopObserver) ProviderError(_ string) {}

// Service is the single entry point for shipping quotes: it validates the
// query, consults the cache, and on a miss fans out to every registered rate
// provider, caching the merged result.
type Service struct {
	config   ServiceConfig
	registry *Registry
	cache    *QuoteCache
	logger   *otelzap.Logger
	observer Observer
}

// SetObserver installs an event observer. Not safe to call after the
// service starts handling requests.
func (s *Service) SetObserver(o Observer) {
	if o != nil {
		s.observer = o
	}
}

// NewService creates a quote service. The cache is injected so tests can run
// independently configured instances side by side.
func NewService(cfg ServiceConfig, registry *Registry, cache *QuoteCache, logger *otelzap.Logger) *Service {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 5 * time.Second
	}
	return &Service{
		config:   cfg,
		registry: registry,
		cache:    cache,
		logger:   logger,
		observer: nopObserver{},
	}
}

// GetQuote returns shipping options for a destination and weight.
//
// A cache hit performs no network I/O. On a miss every registered provider
// is queried in parallel; as long as at least one yields options the quote
// succeeds and is cached. When all providers fail or return nothing the call
// fails with ErrQuoteUnavailable and nothing is cached. Two concurrent
// misses for the same key may both reach the providers; last write wins.
func (s *Service) GetQuote(ctx context.Context, postalCode string, weightGrams int) (*QuoteResult, error) {
	cep := stripNonDigits(postalCode)
	if len(cep) != 8 {
		return nil, fmt.Errorf("%w: postal code %q is not 8 digits", ErrInvalidInput, postalCode)
	}
	if weightGrams <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive, got %d", ErrInvalidInput, weightGrams)
	}

	if cached := s.cache.Get(cep, weightGrams); cached != nil {
		s.observer.CacheHit()
		s.logger.Debug("Quote cache hit",
			zap.String("postal_code", cep),
			zap.Int("weight_grams", weightGrams),
		)
		return cached, nil
	}
	s.observer.CacheMiss()

	req := &RateRequest{
		OriginPostalCode:      s.config.OriginPostalCode,
		DestinationPostalCode: cep,
		WeightGrams:           weightGrams,
	}

	callCtx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	options, errs := s.registry.AllRates(callCtx, req)
	for _, err := range errs {
		var failure *ProviderFailure
		if errors.As(err, &failure) {
			s.observer.ProviderError(failure.Provider)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		s.logger.Warn("Rate provider failed",
			zap.String("postal_code", cep),
			zap.Error(err),
		)
	}

	options = sanitizeOptions(options)
	if len(options) == 0 {
		if cause := errors.Join(errs...); cause != nil {
			return nil, fmt.Errorf("%w for %s/%dg: %w", ErrQuoteUnavailable, cep, weightGrams, cause)
		}
		return nil, fmt.Errorf("%w for %s/%dg: providers returned no options", ErrQuoteUnavailable, cep, weightGrams)
	}

	// A cancelled caller must never leave a partial entry behind.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &QuoteResult{
		PostalCode:  cep,
		WeightGrams: weightGrams,
		Options:     options,
		QuotedAt:    time.Now(),
	}
	s.cache.Set(cep, weightGrams, result)

	s.logger.Info("Quote computed",
		zap.String("postal_code", cep),
		zap.Int("weight_grams", weightGrams),
		zap.Int("option_count", len(options)),
	)
	return result, nil
}

// Cache exposes the underlying cache for diagnostics handlers.
func (s *Service) Cache() *QuoteCache {
	return s.cache
}

// Providers returns the names of the registered rate providers.
func (s *Service) Providers() []string {
	return s.registry.Names()
}

// sanitizeOptions drops options that violate the quote contract (negative
// price) and orders the rest cheapest first.
func sanitizeOptions(options []Option) []Option {
	kept := options[:0]
	for _, opt := range options {
		if opt.Price.IsNegative() {
			continue
		}
		kept = append(kept, opt)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Price.LessThan(kept[j].Price)
	})
	return kept
}
