package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAccessGate_Permit(t *testing.T) {
	gate := NewAccessGate("/admin", []string{"127.0.0.1", " 10.0.0.5 ", ""})

	testCases := []struct {
		name string
		path string
		addr string
		want bool
	}{
		{"allowed address on admin", "/admin/enquiries", "127.0.0.1", true},
		{"trimmed entry", "/admin", "10.0.0.5", true},
		{"unknown address on admin", "/admin/", "203.0.113.9", false},
		{"prefix match without slash", "/administrator", "203.0.113.9", false},
		{"public path", "/api/maids", "203.0.113.9", true},
		{"empty address", "/admin", "", false},
		{"prefix must lead", "/api/admin", "203.0.113.9", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gate.Permit(tc.path, tc.addr))
		})
	}
}

func newGatedRouter(t *testing.T, allowed ...string) *gin.Engine {
	r := gin.New()
	r.Use(AdminIPWhitelist(NewAccessGate("/admin", allowed), zaptest.NewLogger(t)))
	r.GET("/admin/enquiries", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
	r.GET("/api/maids", func(c *gin.Context) { c.String(http.StatusOK, "public") })
	return r
}

func TestAdminIPWhitelist(t *testing.T) {
	r := newGatedRouter(t, "127.0.0.1")

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, UnauthorizedMessage, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	req.RemoteAddr = "127.0.0.1:51000"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/maids", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public", w.Body.String())
}

func TestAdminIPWhitelist_IgnoresForwardedHeaders(t *testing.T) {
	r := newGatedRouter(t, "127.0.0.1")

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	req.Header.Set("X-Forwarded-For", "127.0.0.1")
	req.Header.Set("X-Real-IP", "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminIPWhitelist_EmptyListDeniesAll(t *testing.T) {
	r := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/enquiries", nil)
	req.RemoteAddr = "127.0.0.1:51000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2, time.Minute)
	r := gin.New()
	r.Use(RateLimiter(limiter))
	r.GET("/api/maids", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/maids", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("198.51.100.1:1000"))
	assert.Equal(t, http.StatusOK, do("198.51.100.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("198.51.100.1:1002"))
	assert.Equal(t, http.StatusOK, do("198.51.100.2:1000"), "buckets are per client")
	assert.Equal(t, 2, limiter.Len())
	assert.Same(t, limiter.GetLimiter("198.51.100.1"), limiter.GetLimiter("198.51.100.1"))
}

func TestResponseCache(t *testing.T) {
	rc := NewResponseCache(time.Minute)
	calls := 0
	r := gin.New()
	r.GET("/api/maids", rc.Middleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/api/missing", rc.Middleware(), func(c *gin.Context) {
		calls++
		c.Status(http.StatusNotFound)
	})

	get := func(path string, headers ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Set(headers[i], headers[i+1])
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := get("/api/maids")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(CacheStatusHeader))

	second := get("/api/maids")
	assert.Equal(t, "HIT", second.Header().Get(CacheStatusHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)

	get("/api/maids", "Cache-Control", "no-cache")
	assert.Equal(t, 2, calls)

	get("/api/maids?page=2")
	assert.Equal(t, 3, calls, "query string is part of the key")

	rc.Purge("/api/maids")
	assert.Equal(t, "MISS", get("/api/maids").Header().Get(CacheStatusHeader))
	assert.Equal(t, 4, calls)

	get("/api/missing")
	get("/api/missing")
	assert.Equal(t, 6, calls, "errors are not cached")
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/api/maids", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/maids", nil)
	req.RemoteAddr = "198.51.100.1:1000"
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "198.51.100.1", entries[0].ContextMap()["client_ip"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/api/nowhere", entries[1].ContextMap()["path"])
}
