package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/auth"
	"github.com/baharkarakas/ppob-wallet/internal/metrics"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
	calls  int
}

func (s *stubVerifier) Verify(string) (auth.Claims, error) {
	s.calls++
	return s.claims, s.err
}

func TestAuthRejects(t *testing.T) {
	v := &stubVerifier{err: auth.ErrInvalidToken}
	reached := false
	h := NewAuthMiddleware(v).Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":108,"message":"Token tidak valid atau kadaluwarsa","data":null}`, rec.Body.String())
}

func TestAuthAttachesClaims(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{Email: "user@nutech.test"}}
	var got auth.Claims
	h := NewAuthMiddleware(v).Auth(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		got = c
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer x")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "user@nutech.test", got.Email)
	assert.Equal(t, 1, v.calls)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	const incoming = "0b6f1a2e-8f0c-4d5e-9a51-6c0f3e1d2b7a"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "<script>", seen)
}

func TestRecover(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("nil map"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorId"`)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestRateLimit(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	h := rateLimit(2, clock)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := func() int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, codes())
	assert.Equal(t, http.StatusNoContent, codes())
	assert.Equal(t, http.StatusTooManyRequests, codes())

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, codes())
}

func TestHTTPMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetrics)
	r.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })

	c := metrics.RequestsTotal.WithLabelValues("/things/{id}", http.MethodGet, "201")
	before := testutil.ToFloat64(c)
	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(c))

	unmatched := metrics.RequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")
	before = testutil.ToFloat64(unmatched)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
