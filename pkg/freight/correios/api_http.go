package correios

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &HTTPAPIClient{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// priceRequestBody is the JSON body for the national price endpoint.
type priceRequestBody struct {
	OriginCEP      string   `json:"cepOrigem"`
	DestinationCEP string   `json:"cepDestino"`
	WeightKG       string   `json:"psObjeto"`
	ServiceCodes   []string `json:"coProdutos"`
}

// priceResponseBody is the JSON response from the national price endpoint.
type priceResponseBody struct {
	Products []ServicePrice `json:"parametrosProduto"`
}

// apiErrorBody is the JSON error response structure.
type apiErrorBody struct {
	Code    string `json:"codigo"`
	Message string `json:"mensagem"`
}

// GetPrices fetches price and deadline from the Correios API.
func (c *HTTPAPIClient) GetPrices(ctx context.Context, req *PriceRequest) (*PriceResponse, error) {
	services := req.ServiceCodes
	if len(services) == 0 {
		services = []string{ServicePAC, ServiceSEDEX}
	}

	body := priceRequestBody{
		OriginCEP:      req.OriginCEP,
		DestinationCEP: req.DestinationCEP,
		WeightKG:       fmt.Sprintf("%.3f", req.WeightKG),
		ServiceCodes:   services,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/preco/v1/nacional", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var priceResp priceResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &PriceResponse{Services: priceResp.Products}, nil
}

func (c *HTTPAPIClient) doRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correios-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *HTTPAPIClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return &APIError{
			Code:        apiErr.Code,
			Description: apiErr.Message,
		}
	}

	return &APIError{
		Code:        fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Description: string(body),
	}
}
