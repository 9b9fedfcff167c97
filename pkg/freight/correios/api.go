package correios

import (
	"context"
)

// APIClient defines the interface for Correios API operations. The
// abstraction allows a mock implementation during testing and the real HTTP
// implementation in production.
type APIClient interface {
	// GetPrices fetches price and deadline for the requested services.
	GetPrices(ctx context.Context, req *PriceRequest) (*PriceResponse, error)
}

// Service codes for the national parcel products.
const (
	ServicePAC   = "03298"
	ServiceSEDEX = "03220"
)

// PriceRequest represents a Correios price/deadline request.
type PriceRequest struct {
	// OriginCEP and DestinationCEP are 8-digit postal codes.
	OriginCEP      string
	DestinationCEP string
	// WeightKG is the package weight in kilograms.
	WeightKG float64
	// ServiceCodes lists the products to quote; empty means PAC and SEDEX.
	ServiceCodes []string
}

// PriceResponse represents the Correios price/deadline response.
type PriceResponse struct {
	Services []ServicePrice
}

// ServicePrice is the quote for one Correios product.
type ServicePrice struct {
	// Code is the product code, e.g. "03298".
	Code string `json:"coProduto"`
	// FinalPrice is the total price in BRL, comma-decimal, e.g. "27,90".
	FinalPrice string `json:"pcFinal"`
	// DeadlineDays is the delivery deadline in business days.
	DeadlineDays int `json:"prazoEntrega"`
	// ErrorCode and ErrorMessage are set when the product could not be
	// quoted for this route.
	ErrorCode    string `json:"coErro,omitempty"`
	ErrorMessage string `json:"txErro,omitempty"`
}

// APIError represents an error from the Correios API.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}
