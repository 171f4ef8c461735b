package http

import (
	"io"
	"net/http"

	"github.com/aescanero/broadcastd/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleHealth handles liveness probes
func (s *Server) handleHealth(c *gin.Context) {
	s.metrics.RecordHealthCheck()
	c.String(http.StatusOK, "OK")
}

// handleBroadcast acknowledges an authenticated broadcast trigger.
// The body is drained and discarded; delivery is not performed here.
func (s *Server) handleBroadcast(c *gin.Context) {
	if c.Request.Body != nil {
		if _, err := io.Copy(io.Discard, c.Request.Body); err != nil {
			s.logger.Debug("failed to drain broadcast body", zap.Error(err))
		}
	}

	s.metrics.RecordBroadcast(prometheus.ResultAccepted)
	c.Status(http.StatusNoContent)
}
