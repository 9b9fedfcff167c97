package melhorenvio

import (
	"context"
)

// APIClient defines the interface for Melhor Envio API operations.
type APIClient interface {
	// Calculate fetches shipping quotes from the Melhor Envio calculator.
	Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error)
}

// CalculateRequest represents a Melhor Envio calculator request.
type CalculateRequest struct {
	// FromCEP and ToCEP are 8-digit postal codes.
	FromCEP string
	ToCEP   string
	// WeightKG is the package weight in kilograms.
	WeightKG float64
}

// CalculateResponse represents the calculator response.
type CalculateResponse struct {
	Quotes []Quote
}

// Quote is one service quote from the calculator.
type Quote struct {
	ID int `json:"id"`
	// Name is the service label, e.g. "PAC", ".Package".
	Name string `json:"name"`
	// Price is a dot-decimal string, e.g. "24.90". Empty when the service
	// reported an error for this route.
	Price string `json:"price"`
	// DeliveryRange is the min/max delivery window in business days.
	DeliveryRange DeliveryRange `json:"delivery_range"`
	Company       Company       `json:"company"`
	// Error is set when the service could not quote this route.
	Error string `json:"error,omitempty"`
}

// DeliveryRange is the delivery window in business days.
type DeliveryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Company identifies the underlying carrier.
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// APIError represents an error from the Melhor Envio API.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}
