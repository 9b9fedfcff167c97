package melhorenvio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
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

// calculateRequestBody is the JSON body for the calculator endpoint.
type calculateRequestBody struct {
	From    cepRef     `json:"from"`
	To      cepRef     `json:"to"`
	Package packageRef `json:"package"`
}

type cepRef struct {
	PostalCode string `json:"postal_code"`
}

type packageRef struct {
	Weight float64 `json:"weight"`
}

// apiErrorBody is the JSON error response structure.
type apiErrorBody struct {
	Message string `json:"message"`
}

// Calculate fetches quotes from the Melhor Envio calculator endpoint.
func (c *HTTPAPIClient) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	body := calculateRequestBody{
		From:    cepRef{PostalCode: req.FromCEP},
		To:      cepRef{PostalCode: req.ToCEP},
		Package: packageRef{Weight: req.WeightKG},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/v2/me/shipment/calculate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &CalculateResponse{Quotes: quotes}, nil
}

func (c *HTTPAPIClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return &APIError{
			Code:        fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Description: apiErr.Message,
		}
	}

	return &APIError{
		Code:        fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Description: string(body),
	}
}
