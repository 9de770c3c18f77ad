package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

func testLimiter(t *testing.T, count int64) *limiter.Limiter {
	t.Helper()
	return limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: count})
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	mw := Middleware(testLimiter(t, 1))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/orders/make-order", nil)
	req.RemoteAddr = "10.0.0.9:4321"

	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req)
	require.Equal(t, http.StatusOK, rr1.Code)
	require.Equal(t, "1", rr1.Header().Get("X-RateLimit-Limit"))

	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req)
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.Equal(t, "0", rr2.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddlewareKeysByIdentity(t *testing.T) {
	mw := Middleware(testLimiter(t, 1))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same IP, different uids: each caller gets their own budget.
	for _, uid := range []string{"uid-1", "uid-2"} {
		req := httptest.NewRequest(http.MethodPost, "/orders/make-order", nil)
		req.RemoteAddr = "10.0.0.9:4321"
		req = req.WithContext(common.WithIdentity(req.Context(), common.Identity{UID: uid}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestMiddlewareNilLimiterPassesThrough(t *testing.T) {
	mw := Middleware(nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestNewRejectsBadRate(t *testing.T) {
	_, err := New(nil, "not-a-rate")
	require.Error(t, err)
}
