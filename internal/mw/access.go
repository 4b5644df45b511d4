package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnauthorizedMessage is the body sent to callers outside the allow-list.
const UnauthorizedMessage = "You are unauthorized to view this page!"

// AccessGate restricts every path under Prefix to an allow-list of client
// addresses. Paths outside the prefix are never restricted.
type AccessGate struct {
	Prefix  string
	Allowed map[string]struct{}
}

// NewAccessGate builds a gate from the configured prefix and addresses.
// Entries are matched exactly against the connection's remote address.
func NewAccessGate(prefix string, addrs []string) *AccessGate {
	allowed := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			allowed[a] = struct{}{}
		}
	}
	return &AccessGate{Prefix: prefix, Allowed: allowed}
}

// Permit reports whether a request for path from addr may proceed.
func (g *AccessGate) Permit(path, addr string) bool {
	if !strings.HasPrefix(path, g.Prefix) {
		return true
	}
	_, ok := g.Allowed[addr]
	return ok
}

// AdminIPWhitelist rejects requests under the gate's prefix whose remote
// address is not allowed. Forwarding headers are ignored.
func AdminIPWhitelist(gate *AccessGate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.RemoteIP()
		if gate.Permit(c.Request.URL.Path, addr) {
			c.Next()
			return
		}
		logger.Warn("admin access denied",
			zap.String("path", c.Request.URL.Path),
			zap.String("remote_addr", addr),
		)
		c.Data(http.StatusForbidden, "text/plain; charset=utf-8", []byte(UnauthorizedMessage))
		c.Abort()
	}
}
