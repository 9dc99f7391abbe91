package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timers/pkg/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHealthRoute(t *testing.T) {
	base := NewBaseModule("standings", nil, nil)

	router := chi.NewRouter()
	base.RegisterHealthRoute(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standings/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "standings", response.Module)
}

func TestStopIsIdempotent(t *testing.T) {
	base := NewBaseModule("timers", nil, nil)

	base.Stop()
	base.Stop()

	select {
	case <-base.StopChannel():
	default:
		t.Fatal("stop channel not closed")
	}
}
