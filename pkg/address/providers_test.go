package address_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/belira/freight/pkg/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViaCEP_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Av Paulista",
			"complemento": "de 612 a 1510 - lado par",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP",
			"ibge": "3550308"
		}`))
	}))
	defer srv.Close()

	provider := address.NewViaCEP(srv.URL, time.Second)
	addr, err := provider.Lookup(context.Background(), "01310100")

	require.NoError(t, err)
	assert.Equal(t, "01310100", addr.PostalCode)
	assert.Equal(t, "Av Paulista", addr.Street)
	assert.Equal(t, "Bela Vista", addr.District)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.StateCode)
	assert.Equal(t, "3550308", addr.IBGECode)
}

func TestViaCEP_Lookup_ErroFlag(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"boolean erro", `{"erro": true}`},
		{"string erro", `{"erro": "true"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			provider := address.NewViaCEP(srv.URL, time.Second)
			_, err := provider.Lookup(context.Background(), "99999999")

			assert.True(t, errors.Is(err, address.ErrAddressNotFound))
		})
	}
}

func TestViaCEP_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := address.NewViaCEP(srv.URL, time.Second)
	_, err := provider.Lookup(context.Background(), "01310100")

	require.Error(t, err)
	assert.False(t, errors.Is(err, address.ErrAddressNotFound), "outage is not a no-match")
}

func TestBrasilAPI_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cep/v1/01310100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310100",
			"state": "SP",
			"city": "São Paulo",
			"neighborhood": "Bela Vista",
			"street": "Avenida Paulista"
		}`))
	}))
	defer srv.Close()

	provider := address.NewBrasilAPI(srv.URL, time.Second)
	addr, err := provider.Lookup(context.Background(), "01310100")

	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "SP", addr.StateCode)
	// Fields BrasilAPI doesn't carry default to empty strings
	assert.Equal(t, "", addr.Complement)
	assert.Equal(t, "", addr.IBGECode)
}

func TestBrasilAPI_Lookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Todos os serviços de CEP retornaram erro."}`))
	}))
	defer srv.Close()

	provider := address.NewBrasilAPI(srv.URL, time.Second)
	_, err := provider.Lookup(context.Background(), "99999999")

	assert.True(t, errors.Is(err, address.ErrAddressNotFound))
}

func TestOpenCEP_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/01310100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP",
			"ibge": "3550308"
		}`))
	}))
	defer srv.Close()

	provider := address.NewOpenCEP(srv.URL, time.Second)
	addr, err := provider.Lookup(context.Background(), "01310100")

	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "3550308", addr.IBGECode)
}

func TestOpenCEP_Lookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	provider := address.NewOpenCEP(srv.URL, time.Second)
	_, err := provider.Lookup(context.Background(), "99999999")

	assert.True(t, errors.Is(err, address.ErrAddressNotFound))
}

func TestProviders_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	provider := address.NewViaCEP(srv.URL, 20*time.Millisecond)
	_, err := provider.Lookup(context.Background(), "01310100")

	require.Error(t, err)
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "viacep", address.NewViaCEP("", 0).Name())
	assert.Equal(t, "brasilapi", address.NewBrasilAPI("", 0).Name())
	assert.Equal(t, "opencep", address.NewOpenCEP("", 0).Name())
}
