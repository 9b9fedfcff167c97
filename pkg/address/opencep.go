package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const openCEPBaseURL = "https://opencep.com"

// OpenCEP is the tertiary lookup provider (https://opencep.com). The payload
// follows the ViaCEP field names; unknown CEPs come back as HTTP 404.
type OpenCEP struct {
	baseURL    string
	httpClient *http.Client
}

type openCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
}

// NewOpenCEP creates an OpenCEP provider. An empty baseURL uses the public
// API.
func NewOpenCEP(baseURL string, timeout time.Duration) *OpenCEP {
	if baseURL == "" {
		baseURL = openCEPBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OpenCEP{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (o *OpenCEP) Name() string {
	return "opencep"
}

// Lookup resolves a CEP via GET /v1/{cep}.
func (o *OpenCEP) Lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/v1/%s", o.baseURL, cep)

	body, err := getJSON(ctx, o.httpClient, url)
	if err != nil {
		return nil, err
	}

	var resp openCEPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Address{
		PostalCode: NormalizeCEP(resp.CEP),
		Street:     resp.Logradouro,
		District:   resp.Bairro,
		City:       resp.Localidade,
		StateCode:  resp.UF,
		Complement: resp.Complemento,
		IBGECode:   resp.IBGE,
	}, nil
}
