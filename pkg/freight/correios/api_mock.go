package correios

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGetPrices func(ctx context.Context, req *PriceRequest) (*PriceResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// GetPrices returns mock prices.
func (m *MockAPIClient) GetPrices(ctx context.Context, req *PriceRequest) (*PriceResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated API error"}
	}

	if m.OnGetPrices != nil {
		return m.OnGetPrices(ctx, req)
	}

	return &PriceResponse{
		Services: []ServicePrice{
			{
				Code:         ServicePAC,
				FinalPrice:   "27,90",
				DeadlineDays: 8,
			},
			{
				Code:         ServiceSEDEX,
				FinalPrice:   "45,50",
				DeadlineDays: 3,
			},
		},
	}, nil
}
