// Package middlewares carries gin middleware shared by all routes.
package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/metrics"
)

const (
	headerUserID     = "X-User-ID"
	headerAccessTier = "X-Access-Tier"

	ctxRequesterKey = "requester"
)

// Identity resolves the caller from the gateway-supplied identity headers.
// The engine never derives tiers itself; upstream auth owns that.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := media.Requester{
			UserID: c.GetHeader(headerUserID),
			Tier:   media.ParseTier(c.GetHeader(headerAccessTier)),
		}
		c.Set(ctxRequesterKey, req)
		c.Next()
	}
}

// RequesterFrom returns the resolved caller identity for this request.
func RequesterFrom(c *gin.Context) media.Requester {
	if v, ok := c.Get(ctxRequesterKey); ok {
		if req, ok := v.(media.Requester); ok {
			return req
		}
	}
	return media.Requester{Tier: media.TierAnonymous}
}

// RequestMetrics records request counts and latency per route template.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			statusClass(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
