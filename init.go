package main

import (
	"context"

	"github.com/belira/freight/internal/config"
	"github.com/belira/freight/internal/telemetry"
	"github.com/belira/freight/pkg/address"
	"github.com/belira/freight/pkg/freight"
	"github.com/belira/freight/pkg/freight/correios"
	"github.com/belira/freight/pkg/freight/melhorenvio"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initQuoteCache(cfg *config.Config) *freight.QuoteCache {
	return freight.NewQuoteCache(freight.QuoteCacheConfig{
		TTL:             cfg.CacheTTL,
		WeightBucket:    cfg.CacheWeightBucketGrams,
		MaxEntries:      cfg.CacheMaxEntries,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
}

func initQuoteService(cfg *config.Config, cache *freight.QuoteCache, logger *otelzap.Logger) *freight.Service {
	registry := freight.NewRegistry()

	// Register enabled rate providers
	if cfg.CorreiosEnabled {
		registry.Register(correios.New(correios.Config{
			APIToken: cfg.CorreiosAPIToken,
			BaseURL:  cfg.CorreiosBaseURL,
			UseMock:  cfg.CorreiosUseMock,
			Timeout:  cfg.ProviderTimeout,
		}, logger))
	}

	if cfg.MelhorEnvioEnabled {
		registry.Register(melhorenvio.New(melhorenvio.Config{
			APIToken: cfg.MelhorEnvioAPIToken,
			BaseURL:  cfg.MelhorEnvioBaseURL,
			UseMock:  cfg.MelhorEnvioUseMock,
			Timeout:  cfg.ProviderTimeout,
		}, logger))
	}

	return freight.NewService(freight.ServiceConfig{
		OriginPostalCode: cfg.OriginPostalCode,
		ProviderTimeout:  cfg.ProviderTimeout,
	}, registry, cache, logger)
}

func initAddressResolver(cfg *config.Config, logger *otelzap.Logger) *address.Resolver {
	// Fixed priority order: ViaCEP first, BrasilAPI on failure, OpenCEP last.
	providers := []address.Provider{
		address.NewViaCEP(cfg.ViaCEPBaseURL, cfg.ProviderTimeout),
		address.NewBrasilAPI(cfg.BrasilAPIBaseURL, cfg.ProviderTimeout),
		address.NewOpenCEP(cfg.OpenCEPBaseURL, cfg.ProviderTimeout),
	}

	return address.NewResolver(address.ResolverConfig{
		ProviderTimeout: cfg.ProviderTimeout,
	}, providers, logger)
}
