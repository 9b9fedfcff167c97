package correios_test

import (
	"context"
	"testing"

	"github.com/belira/freight/pkg/freight"
	"github.com/belira/freight/pkg/freight/correios"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *correios.MockAPIClient) *correios.Client {
	logger := otelzap.New(zap.NewNop())
	return correios.NewWithAPIClient(correios.Config{}, mockClient, logger)
}

func TestClient_GetRates_Success(t *testing.T) {
	mockAPI := correios.NewMockAPIClient()
	client := newTestClient(mockAPI)

	req := &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	}

	options, err := client.GetRates(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, options, 2) // Mock returns PAC and SEDEX
	assert.Equal(t, "correios", options[0].Carrier)
	assert.Equal(t, "PAC", options[0].ServiceName)
	assert.True(t, options[0].Price.Equal(decimal.RequireFromString("27.90")))
	assert.Equal(t, 8, options[0].DeliveryEstimate.Days)
}

func TestClient_GetRates_APIError(t *testing.T) {
	mockAPI := correios.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	req := &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	}

	_, err := client.GetRates(context.Background(), req)

	require.Error(t, err)
	assert.True(t, freight.IsRetryable(err))
}

func TestClient_GetRates_CustomMock(t *testing.T) {
	mockAPI := correios.NewMockAPIClient()
	mockAPI.OnGetPrices = func(ctx context.Context, req *correios.PriceRequest) (*correios.PriceResponse, error) {
		assert.Equal(t, "01310100", req.DestinationCEP)
		assert.InDelta(t, 0.5, req.WeightKG, 0.001)
		return &correios.PriceResponse{
			Services: []correios.ServicePrice{
				{Code: correios.ServiceSEDEX, FinalPrice: "1.045,50", DeadlineDays: 1},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	req := &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "01310100",
		WeightGrams:           500,
	}

	options, err := client.GetRates(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "SEDEX", options[0].ServiceName)
	// Thousands separator and comma decimal both handled
	assert.True(t, options[0].Price.Equal(decimal.RequireFromString("1045.50")))
}

func TestClient_GetRates_SkipsErroredServices(t *testing.T) {
	mockAPI := correios.NewMockAPIClient()
	mockAPI.OnGetPrices = func(ctx context.Context, req *correios.PriceRequest) (*correios.PriceResponse, error) {
		return &correios.PriceResponse{
			Services: []correios.ServicePrice{
				{Code: correios.ServicePAC, ErrorCode: "008", ErrorMessage: "route not served"},
				{Code: correios.ServiceSEDEX, FinalPrice: "45,50", DeadlineDays: 3},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	options, err := client.GetRates(context.Background(), &freight.RateRequest{
		OriginPostalCode:      "01034001",
		DestinationPostalCode: "69900970",
		WeightGrams:           1200,
	})

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, correios.ServiceSEDEX, options[0].ServiceCode)
}

func TestClient_GetRates_SkipsUnparseablePrices(t *testing.T) {
	mockAPI := correios.NewMockAPIClient()
	mockAPI.OnGetPrices = func(ctx context.Context, req *correios.PriceRequest) (*correios.PriceResponse, error) {
		return &correios.PriceResponse{
			Services: []correios.ServicePrice{
				{Code: correios.ServicePAC, FinalPrice: "n/a", DeadlineDays: 8},
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
	assert.Empty(t, options)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(correios.NewMockAPIClient())
	assert.Equal(t, "correios", client.Name())
}
