package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	observed []observation
}

func (m *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc-123", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/sessions/{sessionId}", status: http.StatusNotFound}, m.observed[0])
}

func TestMetrics_DefaultStatusOK(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, http.StatusOK, m.observed[0].status)
}

func TestLogging_PassesThrough(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Logging(nopLogger{}))
	router.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	t.Run("blocks after burst", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, 2, nopLogger{})
		limiter.now = func() time.Time { return now }
		h := limiter.Middleware(ok)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/sessions/s1/submit", nil)
			req.RemoteAddr = "10.0.0.1:5000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	})

	t.Run("limits each address separately", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, 1, nopLogger{})
		limiter.now = func() time.Time { return now }
		h := limiter.Middleware(ok)

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			req := httptest.NewRequest(http.MethodPost, "/submit", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusCreated, rec.Code, addr)
		}
	})

	t.Run("refills over time", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, 1, nopLogger{})
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.allow("10.0.0.1"))
		assert.False(t, limiter.allow("10.0.0.1"))

		now = now.Add(time.Second)
		assert.True(t, limiter.allow("10.0.0.1"))
	})

	t.Run("zero rps disables limit", func(t *testing.T) {
		limiter := NewRateLimiter(0, 0, nopLogger{})
		for i := 0; i < 100; i++ {
			require.True(t, limiter.allow("10.0.0.1"))
		}
	})

	t.Run("idle addresses are swept", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, 1, nopLogger{})
		limiter.now = func() time.Time { return now }

		limiter.allow("10.0.0.1")
		now = now.Add(2 * limiterIdleTTL)
		limiter.allow("10.0.0.2")

		assert.Len(t, limiter.clients, 1)
		assert.Contains(t, limiter.clients, "10.0.0.2")
	})
}
