package freight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/belira/freight/pkg/freight"
	"github.com/belira/freight/pkg/freight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	registry := freight.NewRegistry()

	registry.Register(mock.New("test-provider"))

	got, err := registry.Get("test-provider")
	require.NoError(t, err, "provider should be registered")
	assert.Equal(t, "test-provider", got.Name())
}

func TestRegistry_Register_Override(t *testing.T) {
	registry := freight.NewRegistry()

	registry.Register(mock.New("test-provider"))
	assert.Equal(t, 1, registry.Count())

	// Register again with same name should override
	registry.Register(mock.New("test-provider"))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	registry := freight.NewRegistry()

	_, err := registry.Get("nonexistent")
	assert.Error(t, err, "should return error for unregistered provider")
	assert.True(t, errors.Is(err, freight.ErrNoProviders))
}

func TestRegistry_All(t *testing.T) {
	registry := freight.NewRegistry()

	registry.Register(mock.New("provider-a"))
	registry.Register(mock.New("provider-b"))
	registry.Register(mock.New("provider-c"))

	assert.Len(t, registry.All(), 3)
}

func TestRegistry_Names(t *testing.T) {
	registry := freight.NewRegistry()

	registry.Register(mock.New("correios"))
	registry.Register(mock.New("melhorenvio"))

	names := registry.Names()
	assert.Len(t, names, 2)
	assert.Contains(t, names, "correios")
	assert.Contains(t, names, "melhorenvio")
}

func TestRegistry_AllRates_Empty(t *testing.T) {
	registry := freight.NewRegistry()

	req := &freight.RateRequest{DestinationPostalCode: "01310100", WeightGrams: 500}
	options, errs := registry.AllRates(context.Background(), req)

	assert.Empty(t, options)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], freight.ErrNoProviders))
}

func TestRegistry_AllRates_MergesProviders(t *testing.T) {
	registry := freight.NewRegistry()
	registry.Register(mock.New("provider-a"))
	registry.Register(mock.New("provider-b"))

	req := &freight.RateRequest{DestinationPostalCode: "01310100", WeightGrams: 500}
	options, errs := registry.AllRates(context.Background(), req)

	assert.Empty(t, errs)
	assert.Len(t, options, 4) // two canned options per mock
}

func TestRegistry_AllRates_CollectsFailures(t *testing.T) {
	registry := freight.NewRegistry()

	flaky := mock.New("flaky")
	flaky.Err = errors.New("connection refused")
	registry.Register(flaky)
	registry.Register(mock.New("healthy"))

	req := &freight.RateRequest{DestinationPostalCode: "01310100", WeightGrams: 500}
	options, errs := registry.AllRates(context.Background(), req)

	assert.Len(t, options, 2, "healthy provider's options survive")
	require.Len(t, errs, 1)

	var failure *freight.ProviderFailure
	require.True(t, errors.As(errs[0], &failure))
	assert.Equal(t, "flaky", failure.Provider)
}
