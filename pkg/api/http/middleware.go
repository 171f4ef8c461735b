package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/aescanero/broadcastd/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-ID"
	contextRequest  = "request_id"
	bearerPrefix    = "Bearer "
)

// BearerAuth rejects requests whose Authorization header is not exactly
// "Bearer <token>". Every failure is a bare 401.
func BearerAuth(token string, metrics *prometheus.Collector, logger *zap.Logger) gin.HandlerFunc {
	expected := []byte(bearerPrefix + token)

	return func(c *gin.Context) {
		got := c.GetHeader("Authorization")
		if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			metrics.RecordBroadcast(prometheus.ResultUnauthorized)
			logger.Debug("rejected internal request",
				zap.String("path", c.Request.URL.Path),
				zap.Bool("header_present", got != ""),
				zap.String("request_id", c.GetString(contextRequest)))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}

// requestID propagates or assigns an X-Request-ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextRequest, id)
		c.Header(headerRequestID, id)

		c.Next()
	}
}

// requestLogger is a middleware for request logging
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(contextRequest)))
	}
}

// requestMetrics observes request latency per matched route
func requestMetrics(metrics *prometheus.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, c.Writer.Status(), time.Since(start))
	}
}
