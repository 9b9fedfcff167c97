package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/belira/freight/pkg/address"
	"github.com/belira/freight/pkg/freight"
	"go.uber.org/zap"
)

// calculateRequest is the body of POST /api/freight/calculate.
type calculateRequest struct {
	PostalCode string `json:"postalCode" validate:"required"`
	Weight     int    `json:"weight" validate:"required,gt=0"`
}

// errorResponse is the generic failure body.
type errorResponse struct {
	Message string `json:"message"`
}

// addressResponse is the body of GET /api/address/{cep}. Field names follow
// the storefront's autofill contract.
type addressResponse struct {
	Success    bool   `json:"Success"`
	Msg        string `json:"Msg,omitempty"`
	CEP        string `json:"CEP,omitempty"`
	Street     string `json:"Street,omitempty"`
	District   string `json:"District,omitempty"`
	City       string `json:"City,omitempty"`
	UF         string `json:"UF,omitempty"`
	Complement string `json:"Complement,omitempty"`
	IBGE       string `json:"IBGE,omitempty"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		s.metrics.RecordRequest("calculate", "bad_request", time.Since(start).Seconds())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		s.metrics.RecordRequest("calculate", "bad_request", time.Since(start).Seconds())
		return
	}

	result, err := s.quotes.GetQuote(r.Context(), req.PostalCode, req.Weight)
	if err != nil {
		status, label := quoteErrorStatus(err)
		s.logger.Warn("Quote request failed",
			zap.String("postal_code", req.PostalCode),
			zap.Int("weight", req.Weight),
			zap.Error(err),
		)
		s.writeError(w, status, userMessage(err))
		s.metrics.RecordRequest("calculate", label, time.Since(start).Seconds())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
	s.metrics.RecordRequest("calculate", "ok", time.Since(start).Seconds())
	s.metrics.CacheEntries.Set(float64(s.quotes.Cache().Stats().Total))
}

func (s *Server) handleAddress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cep := r.PathValue("cep")

	addr, err := s.resolver.Resolve(r.Context(), cep)
	if err != nil {
		status := http.StatusInternalServerError
		label := "error"
		switch {
		case errors.Is(err, address.ErrInvalidPostalCode):
			status = http.StatusBadRequest
			label = "bad_request"
		case errors.Is(err, address.ErrAddressNotFound):
			status = http.StatusNotFound
			label = "not_found"
		}
		s.writeJSON(w, status, addressResponse{Success: false, Msg: userMessage(err)})
		s.metrics.RecordRequest("address", label, time.Since(start).Seconds())
		return
	}

	s.writeJSON(w, http.StatusOK, addressResponse{
		Success:    true,
		CEP:        addr.PostalCode,
		Street:     addr.Street,
		District:   addr.District,
		City:       addr.City,
		UF:         addr.StateCode,
		Complement: addr.Complement,
		IBGE:       addr.IBGECode,
	})
	s.metrics.RecordRequest("address", "ok", time.Since(start).Seconds())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.quotes.Cache().Stats())
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.quotes.Cache().Clear()
	s.logger.Info("Quote cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Message: message})
}

// quoteErrorStatus maps quote errors onto HTTP statuses. Timeouts collapse
// into the unavailable case for the caller-visible contract.
func quoteErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, freight.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, freight.ErrQuoteUnavailable), errors.Is(err, freight.ErrProviderTimeout):
		return http.StatusBadGateway, "unavailable"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// userMessage keeps provider internals out of client-facing errors.
func userMessage(err error) string {
	switch {
	case errors.Is(err, freight.ErrInvalidInput):
		return "postal code must be 8 digits and weight must be positive"
	case errors.Is(err, freight.ErrQuoteUnavailable), errors.Is(err, freight.ErrProviderTimeout):
		return "shipping temporarily unavailable, please retry"
	case errors.Is(err, address.ErrInvalidPostalCode):
		return "postal code must be 8 digits"
	case errors.Is(err, address.ErrAddressNotFound):
		return "address not found, enter your address manually"
	default:
		return "internal error"
	}
}
