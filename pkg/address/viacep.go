package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const viaCEPBaseURL = "https://viacep.com.br"

// ViaCEP is the primary lookup provider (https://viacep.com.br).
type ViaCEP struct {
	baseURL    string
	httpClient *http.Client
}

// viaCEPResponse mirrors the ViaCEP JSON payload. A nonexistent CEP comes
// back as HTTP 200 with `"erro": true`.
type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	// Erro arrives as bool or as "true" depending on the API version.
	Erro looseBool `json:"erro"`
}

type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	*b = strings.Trim(string(data), `"`) == "true"
	return nil
}

// NewViaCEP creates a ViaCEP provider. An empty baseURL uses the public API.
func NewViaCEP(baseURL string, timeout time.Duration) *ViaCEP {
	if baseURL == "" {
		baseURL = viaCEPBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ViaCEP{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (v *ViaCEP) Name() string {
	return "viacep"
}

// Lookup resolves a CEP via GET /ws/{cep}/json/.
func (v *ViaCEP) Lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", v.baseURL, cep)

	body, err := getJSON(ctx, v.httpClient, url)
	if err != nil {
		return nil, err
	}

	var resp viaCEPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Erro {
		return nil, fmt.Errorf("%w: viacep reported no match", ErrAddressNotFound)
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
