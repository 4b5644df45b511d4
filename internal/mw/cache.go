package mw

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheStatusHeader tells clients whether a response was served from cache.
const CacheStatusHeader = "X-Cache"

type cachedPage struct {
	status  int
	headers http.Header
	body    []byte
}

type recordingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps rendered GET responses of the public listing so
// repeated page loads do not hit the database.
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{store: cache.New(ttl, 2*ttl), ttl: ttl}
}

// Purge drops every entry whose key starts with prefix. It is called after
// writes that change what the cached pages show.
func (rc *ResponseCache) Purge(prefix string) {
	for key := range rc.store.Items() {
		if strings.HasPrefix(key, prefix) {
			rc.store.Delete(key)
		}
	}
}

// Middleware caches 2xx GET responses keyed by the request URI.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || c.GetHeader("Cache-Control") == "no-cache" {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if entry, found := rc.store.Get(key); found {
			page := entry.(cachedPage)
			for k, v := range page.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set(CacheStatusHeader, "HIT")
			c.Writer.WriteHeader(page.status)
			_, _ = c.Writer.Write(page.body)
			c.Abort()
			return
		}

		c.Writer.Header().Set(CacheStatusHeader, "MISS")
		rec := &recordingWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		if rec.Status() >= 200 && rec.Status() < 300 {
			headers := rec.Header().Clone()
			headers.Del(CacheStatusHeader)
			rc.store.Set(key, cachedPage{
				status:  rec.Status(),
				headers: headers,
				body:    rec.body.Bytes(),
			}, rc.ttl)
		}
	}
}
