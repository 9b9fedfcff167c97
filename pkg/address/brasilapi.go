package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brasilAPIBaseURL = "https://brasilapi.com.br"

// BrasilAPI is the secondary lookup provider (https://brasilapi.com.br).
// Unknown CEPs come back as HTTP 404.
type BrasilAPI struct {
	baseURL    string
	httpClient *http.Client
}

type brasilAPIResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

// NewBrasilAPI creates a BrasilAPI provider. An empty baseURL uses the
// public API.
func NewBrasilAPI(baseURL string, timeout time.Duration) *BrasilAPI {
	if baseURL == "" {
		baseURL = brasilAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BrasilAPI{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (b *BrasilAPI) Name() string {
	return "brasilapi"
}

// Lookup resolves a CEP via GET /api/cep/v1/{cep}.
func (b *BrasilAPI) Lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/api/cep/v1/%s", b.baseURL, cep)

	body, err := getJSON(ctx, b.httpClient, url)
	if err != nil {
		return nil, err
	}

	var resp brasilAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Address{
		PostalCode: NormalizeCEP(resp.CEP),
		Street:     resp.Street,
		District:   resp.Neighborhood,
		City:       resp.City,
		StateCode:  resp.State,
	}, nil
}
