package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Store
	OriginPostalCode string `envconfig:"ORIGIN_POSTAL_CODE" default:"01034001"`

	// Quote cache
	CacheTTL               time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	CacheWeightBucketGrams int           `envconfig:"CACHE_WEIGHT_BUCKET_GRAMS" default:"100"`
	CacheMaxEntries        int           `envconfig:"CACHE_MAX_ENTRIES" default:"1000"`
	CacheCleanupInterval   time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"30m"`

	// Providers
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"5s"`

	// Correios
	CorreiosAPIToken string `envconfig:"CORREIOS_API_TOKEN"`
	CorreiosBaseURL  string `envconfig:"CORREIOS_BASE_URL" default:"https://api.correios.com.br"`
	CorreiosEnabled  bool   `envconfig:"CORREIOS_ENABLED" default:"true"`
	CorreiosUseMock  bool   `envconfig:"CORREIOS_USE_MOCK" default:"false"`

	// Melhor Envio
	MelhorEnvioAPIToken string `envconfig:"MELHORENVIO_API_TOKEN"`
	MelhorEnvioBaseURL  string `envconfig:"MELHORENVIO_BASE_URL" default:"https://melhorenvio.com.br"`
	MelhorEnvioEnabled  bool   `envconfig:"MELHORENVIO_ENABLED" default:"true"`
	MelhorEnvioUseMock  bool   `envconfig:"MELHORENVIO_USE_MOCK" default:"false"`

	// Address lookup chain, tried in order
	ViaCEPBaseURL    string `envconfig:"VIACEP_BASE_URL" default:"https://viacep.com.br"`
	BrasilAPIBaseURL string `envconfig:"BRASILAPI_BASE_URL" default:"https://brasilapi.com.br"`
	OpenCEPBaseURL   string `envconfig:"OPENCEP_BASE_URL" default:"https://opencep.com"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"belira-freight"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("correios.enabled", c.CorreiosEnabled),
		attribute.Bool("melhorenvio.enabled", c.MelhorEnvioEnabled),
	}
}
