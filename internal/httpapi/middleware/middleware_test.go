package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	n   int64
	err error
}

func (f *fakeCounter) IncrWindow(context.Context, string, time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.n++
	return f.n, nil
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func get(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_Generated(t *testing.T) {
	r := newTestRouter(RequestID())
	w := get(r, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequestID_Echoed(t *testing.T) {
	r := newTestRouter(RequestID())
	w := get(r, map[string]string{HeaderRequestID: "abc-123"})
	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := get(r, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	r := newTestRouter(RateLimit(&fakeCounter{}, 2, time.Minute))

	require.Equal(t, http.StatusOK, get(r, nil).Code)
	require.Equal(t, http.StatusOK, get(r, nil).Code)

	w := get(r, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := newTestRouter(RateLimit(&fakeCounter{err: errors.New("redis down")}, 1, time.Minute))

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, get(r, nil).Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newTestRouter(RateLimit(nil, 0, time.Minute))

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, get(r, nil).Code)
	}
}
