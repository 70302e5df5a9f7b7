package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// OtelTracing instruments /api/ requests. The long-lived event streams are
// left out so their spans do not stay open for the whole connection.
func OtelTracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithGinFilter(func(c *gin.Context) bool {
		path := c.Request.URL.Path
		return strings.HasPrefix(path, "/api/") && !strings.HasSuffix(path, "/events")
	}))
}

// TraceID echoes the current trace id in the X-Trace-Id response header.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			c.Header("X-Trace-Id", span.SpanContext().TraceID().String())
		}
		c.Next()
	}
}
