// Package melhorenvio provides integration with the Melhor Envio shipping
// calculator API.
package melhorenvio

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/belira/freight/pkg/freight"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const providerName = "melhorenvio"

// Config holds Melhor Envio configuration.
type Config struct {
	APIToken string
	BaseURL  string
	UseMock  bool
	Timeout  time.Duration
}

// Client is the Melhor Envio rate provider.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
}

// New creates a new Melhor Envio client.
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

// NewWithAPIClient creates a new Melhor Envio client with a custom API client.
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

// GetRates returns normalized shipping options from Melhor Envio.
func (c *Client) GetRates(ctx context.Context, req *freight.RateRequest) ([]freight.Option, error) {
	c.logger.Info("Getting Melhor Envio rates",
		zap.String("origin", req.OriginPostalCode),
		zap.String("destination", req.DestinationPostalCode),
		zap.Int("weight_grams", req.WeightGrams),
	)

	apiReq := &CalculateRequest{
		FromCEP:  req.OriginPostalCode,
		ToCEP:    req.DestinationPostalCode,
		WeightKG: float64(req.WeightGrams) / 1000,
	}

	apiResp, err := c.apiClient.Calculate(ctx, apiReq)
	if err != nil {
		c.logger.Error("Melhor Envio API error", zap.Error(err))
		return nil, freight.NewProviderError(providerName, "API_ERROR", "calculate request failed").
			WithCause(err).
			WithRetryable(true)
	}

	options := make([]freight.Option, 0, len(apiResp.Quotes))
	for _, q := range apiResp.Quotes {
		if q.Error != "" || q.Price == "" {
			c.logger.Warn("Melhor Envio service not quotable",
				zap.String("service", q.Name),
				zap.String("error", q.Error),
			)
			continue
		}

		price, err := decimal.NewFromString(q.Price)
		if err != nil {
			c.logger.Warn("Melhor Envio price unparseable",
				zap.String("service", q.Name),
				zap.String("raw_price", q.Price),
			)
			continue
		}

		options = append(options, freight.Option{
			Carrier:          carrierLabel(q),
			ServiceCode:      strconv.Itoa(q.ID),
			ServiceName:      q.Name,
			Price:            price,
			DeliveryEstimate: estimateFromRange(q.DeliveryRange),
		})
	}

	return options, nil
}

// carrierLabel prefers the underlying carrier name, e.g. "Jadlog", falling
// back to the aggregator when the company is unknown.
func carrierLabel(q Quote) string {
	if q.Company.Name != "" {
		return q.Company.Name
	}
	return providerName
}

// estimateFromRange collapses an equal min/max window into a day count and
// keeps the range as provider text otherwise.
func estimateFromRange(r DeliveryRange) freight.DeliveryEstimate {
	if r.Min == r.Max {
		return freight.EstimateDays(r.Max)
	}
	return freight.EstimateText(fmt.Sprintf("%d a %d dias úteis", r.Min, r.Max))
}
