// Package address resolves Brazilian postal codes (CEP) into normalized
// addresses using an ordered chain of lookup providers.
package address

import (
	"context"
	"errors"
	"strings"
)

// Address is the canonical address shape emitted by the resolver. Every
// field a provider omits defaults to "" so callers never null-check.
type Address struct {
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	StateCode  string `json:"stateCode"`
	Complement string `json:"complement"`
	IBGECode   string `json:"ibgeCode"`
}

// Provider is one postal-code lookup backend. Lookup returns
// ErrAddressNotFound when the provider reports no match; any other error is
// a transport or contract failure.
type Provider interface {
	// Name returns the provider identifier (e.g., "viacep").
	Name() string

	// Lookup resolves an 8-digit CEP. Implementations receive digits only.
	Lookup(ctx context.Context, cep string) (*Address, error)
}

var (
	// ErrInvalidPostalCode indicates the input is not 8 digits after
	// stripping formatting. No provider is called.
	ErrInvalidPostalCode = errors.New("invalid postal code")

	// ErrAddressNotFound indicates every provider in the chain failed or
	// found nothing for a syntactically valid CEP.
	ErrAddressNotFound = errors.New("address not found")
)

// NormalizeCEP strips formatting from a CEP, keeping digits only.
func NormalizeCEP(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
