package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"base": "USD",
			"rates": {"USD": "1", "EUR": "0.90", "GBP": "0.78"},
			"lastUpdated": "2026-08-30T06:00:00Z"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "USD")

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USD", snap.Base)

	rate, ok := snap.Rate("EUR")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.90")))

	assert.Equal(t, "2026-08-30T06:00:00Z", snap.FetchedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestClientFetchNumericRates(t *testing.T) {
	// Providers send rates as JSON numbers too; decimal accepts both
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base": "USD", "rates": {"USD": 1, "JPY": 147.25}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)

	rate, ok := snap.Rate("JPY")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("147.25")))
}

func TestClientFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "unavailable", "message": "try later"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClientFetchEmptyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base": "USD", "rates": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "")

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}
