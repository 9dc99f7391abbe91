package evegateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTracksErrorLimits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ESI-Error-Limit-Remain", "42")
		w.Header().Set("X-ESI-Error-Limit-Reset", "55")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Goonswarm Federation","ticker":"CONDI"}`))
	}))
	defer server.Close()

	t.Setenv("ESI_BASE_URL", server.URL)
	client := NewClient(nil)

	info, err := client.GetAllianceInfo(context.Background(), 1354830081)
	require.NoError(t, err)
	assert.Equal(t, "CONDI", info.Ticker)
	assert.Equal(t, 42, client.ErrorLimitRemain())
}

func TestClientNotFoundDoesNotTouchErrorBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ESI-Error-Limit-Remain", "7")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	t.Setenv("ESI_BASE_URL", server.URL)
	client := NewClient(nil)

	_, err := client.GetAllianceInfo(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 0, client.ErrorLimitRemain())
}

func TestClientServesFromCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Expires", "Mon, 01 Jan 2035 00:00:00 GMT")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Pandemic Horde","ticker":"REKTD"}`))
	}))
	defer server.Close()

	t.Setenv("ESI_BASE_URL", server.URL)
	client := NewClient(nil)

	for i := 0; i < 3; i++ {
		info, err := client.GetAllianceInfo(context.Background(), 498125261)
		require.NoError(t, err)
		assert.Equal(t, "REKTD", info.Ticker)
	}
	assert.Equal(t, 1, requests)
}
