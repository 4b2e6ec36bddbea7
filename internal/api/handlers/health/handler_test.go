package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error { return nil }

func TestHandler_Handle(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHandler(map[string]Pinger{
			"storage":  pingerFunc(ok),
			"sessions": pingerFunc(ok),
		}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"storage": "ok", "sessions": "ok"}, body.Checks)
	})

	t.Run("one failing", func(t *testing.T) {
		h := NewHandler(map[string]Pinger{
			"storage":  pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			"sessions": pingerFunc(ok),
		}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unavailable", body.Checks["storage"])
		assert.Equal(t, "ok", body.Checks["sessions"])
	})
}
