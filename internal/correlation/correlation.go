// Package correlation propagates a per-request correlation token so that
// every log line produced while serving a request can be tied back to it.
package correlation

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the HTTP header carrying the correlation ID.
const Header = "X-Request-ID"

type contextKey struct{}

// FromContext returns the correlation ID stored in ctx, or "" if unset.
func FromContext(ctx context.Context) string {
	if cid, ok := ctx.Value(contextKey{}).(string); ok {
		return cid
	}
	return ""
}

// NewContext returns a copy of ctx carrying the given correlation ID.
func NewContext(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, contextKey{}, cid)
}

// Middleware reads the X-Request-ID header or generates a fresh UUID, stores
// it in the request context and echoes it back on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(Header)
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), cid))
		c.Header(Header, cid)
		c.Next()
	}
}
