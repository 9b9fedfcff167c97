package melhorenvio_test

import (
	"context"
	"testing"

	"github.com/belira/freight/pkg/freight"
	"github.com/belira/freight/pkg/freight/melhorenvio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *melhorenvio.MockAPIClient) *melhorenvio.Client {
	logger := otelzap.New(zap.NewNop())
	return melhorenvio.NewWithAPIClient(melhorenvio.Config{}, mockClient, logger)
}

func TestClient_GetRates_Success(t *testing.T) {
	mockAPI := melhorenvio.NewMockAPIClient()
	client := newTestClient(mockAPI)

	req := &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	}

	options, err := client.GetRates(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "Correios", options[0].Carrier)
	assert.Equal(t, "PAC", options[0].ServiceName)
	assert.True(t, options[0].Price.Equal(decimal.RequireFromString("24.90")))
	// min != max becomes a provider range string
	assert.Equal(t, "5 a 8 dias úteis", options[0].DeliveryEstimate.Text)
}

func TestClient_GetRates_APIError(t *testing.T) {
	mockAPI := melhorenvio.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.GetRates(context.Background(), &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	})

	require.Error(t, err)
	assert.True(t, freight.IsRetryable(err))
}

func TestClient_GetRates_EqualRangeBecomesDays(t *testing.T) {
	mockAPI := melhorenvio.NewMockAPIClient()
	mockAPI.OnCalculate = func(ctx context.Context, req *melhorenvio.CalculateRequest) (*melhorenvio.CalculateResponse, error) {
		return &melhorenvio.CalculateResponse{
			Quotes: []melhorenvio.Quote{
				{
					ID:            2,
					Name:          "SEDEX",
					Price:         "39.80",
					DeliveryRange: melhorenvio.DeliveryRange{Min: 3, Max: 3},
					Company:       melhorenvio.Company{ID: 1, Name: "Correios"},
				},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	options, err := client.GetRates(context.Background(), &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	})

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, 3, options[0].DeliveryEstimate.Days)
	assert.Empty(t, options[0].DeliveryEstimate.Text)
}

func TestClient_GetRates_SkipsErroredQuotes(t *testing.T) {
	mockAPI := melhorenvio.NewMockAPIClient()
	mockAPI.OnCalculate = func(ctx context.Context, req *melhorenvio.CalculateRequest) (*melhorenvio.CalculateResponse, error) {
		return &melhorenvio.CalculateResponse{
			Quotes: []melhorenvio.Quote{
				{ID: 1, Name: "PAC", Error: "weight exceeded"},
				{ID: 3, Name: ".Package", Price: "21.45", DeliveryRange: melhorenvio.DeliveryRange{Min: 4, Max: 6}, Company: melhorenvio.Company{Name: "Jadlog"}},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	options, err := client.GetRates(context.Background(), &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           30000,
	})

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Jadlog", options[0].Carrier)
	assert.Equal(t, "3", options[0].ServiceCode)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(melhorenvio.NewMockAPIClient())
	assert.Equal(t, "melhorenvio", client.Name())
}
