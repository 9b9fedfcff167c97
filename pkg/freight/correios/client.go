// Package correios provides integration with the Correios price/deadline API.
package correios

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/belira/freight/pkg/freight"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const providerName = "correios"

// serviceNames maps product codes to human-readable labels.
var serviceNames = map[string]string{
	ServicePAC:   "PAC",
	ServiceSEDEX: "SEDEX",
}

// Config holds Correios configuration.
type Config struct {
	APIToken string
	BaseURL  string
	UseMock  bool
	Timeout  time.Duration
}

// Client is the Correios rate provider.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
}

// New creates a new Correios client.
func New(cfg Config, logger *otelzap.Logger) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			APIToken: cfg.APIToken,
			Timeout:  cfg.Timeout,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
	}
}

// NewWithAPIClient creates a new Correios client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// GetRates returns normalized shipping options from Correios.
func (c *Client) GetRates(ctx context.Context, req *freight.RateRequest) ([]freight.Option, error) {
	c.logger.Info("Getting Correios rates",
		zap.String("origin", req.OriginPostalCode),
		zap.String("destination", req.DestinationPostalCode),
		zap.Int("weight_grams", req.WeightGrams),
	)

	apiReq := &PriceRequest{
		OriginCEP:      req.OriginPostalCode,
		DestinationCEP: req.DestinationPostalCode,
		WeightKG:       float64(req.WeightGrams) / 1000,
	}

	apiResp, err := c.apiClient.GetPrices(ctx, apiReq)
	if err != nil {
		c.logger.Error("Correios API error", zap.Error(err))
		return nil, freight.NewProviderError(providerName, "API_ERROR", "price request failed").
			WithCause(err).
			WithRetryable(true)
	}

	options := make([]freight.Option, 0, len(apiResp.Services))
	for _, svc := range apiResp.Services {
		if svc.ErrorCode != "" {
			c.logger.Warn("Correios service not quotable",
				zap.String("service", svc.Code),
				zap.String("error_code", svc.ErrorCode),
				zap.String("error_message", svc.ErrorMessage),
			)
			continue
		}

		price, err := parsePrice(svc.FinalPrice)
		if err != nil {
			c.logger.Warn("Correios price unparseable",
				zap.String("service", svc.Code),
				zap.String("raw_price", svc.FinalPrice),
			)
			continue
		}

		options = append(options, freight.Option{
			Carrier:          providerName,
			ServiceCode:      svc.Code,
			ServiceName:      serviceName(svc.Code),
			Price:            price,
			DeliveryEstimate: freight.EstimateDays(svc.DeadlineDays),
		})
	}

	return options, nil
}

// parsePrice converts a Correios comma-decimal price ("1.027,90") into a
// decimal amount.
func parsePrice(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	price, err := decimal.NewFromString(strings.TrimSpace(normalized))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing price %q: %w", raw, err)
	}
	return price, nil
}

func serviceName(code string) string {
	if name, ok := serviceNames[code]; ok {
		return name
	}
	return code
}
