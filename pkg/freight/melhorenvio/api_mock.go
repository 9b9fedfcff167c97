package melhorenvio

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCalculate func(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Calculate returns mock quotes.
func (m *MockAPIClient) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated API error"}
	}

	if m.OnCalculate != nil {
		return m.OnCalculate(ctx, req)
	}

	return &CalculateResponse{
		Quotes: []Quote{
			{
				ID:            1,
				Name:          "PAC",
				Price:         "24.90",
				DeliveryRange: DeliveryRange{Min: 5, Max: 8},
				Company:       Company{ID: 1, Name: "Correios"},
			},
			{
				ID:            3,
				Name:          ".Package",
				Price:         "21.45",
				DeliveryRange: DeliveryRange{Min: 4, Max: 6},
				Company:       Company{ID: 2, Name: "Jadlog"},
			},
			{
				ID:            2,
				Name:          "SEDEX",
				Price:         "39.80",
				DeliveryRange: DeliveryRange{Min: 2, Max: 3},
				Company:       Company{ID: 1, Name: "Correios"},
			},
		},
	}, nil
}
