package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aescanero/broadcastd/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDPropagated(t *testing.T) {
	s, _, _ := newTestServer(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	s, _, _ := newTestServer(t, "secret")

	w := doRequest(s.Handler(), http.MethodPost, "/internal/broadcast", "", "")

	id := w.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-ID = %q is not a UUID: %v", id, err)
	}
}

func TestBearerAuthLogsRejectionWithoutCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	metrics := prometheus.NewCollector(promclient.NewRegistry())

	router := gin.New()
	router.POST("/guarded", BearerAuth("secret", metrics, zap.New(core)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := doRequest(router, http.MethodPost, "/guarded", "Bearer leaked-value", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	entries := logs.FilterMessage("rejected internal request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d rejection entries, want 1", len(entries))
	}
	for _, field := range entries[0].Context {
		if field.String == "Bearer leaked-value" || field.String == "leaked-value" {
			t.Errorf("rejection log leaked credential in field %q", field.Key)
		}
	}
	if present, ok := entries[0].ContextMap()["header_present"].(bool); !ok || !present {
		t.Errorf("header_present = %v, want true", entries[0].ContextMap()["header_present"])
	}
}

func TestBearerAuthPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := prometheus.NewCollector(promclient.NewRegistry())

	called := false
	router := gin.New()
	router.POST("/guarded", BearerAuth("tok", metrics, zap.NewNop()), func(c *gin.Context) {
		called = true
		c.Status(http.StatusNoContent)
	})

	w := doRequest(router, http.MethodPost, "/guarded", "Bearer tok", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if !called {
		t.Error("handler was not invoked")
	}
}

func TestRequestLoggerAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewServer(&Config{
		Token:    "secret",
		Metrics:  prometheus.NewCollector(promclient.NewRegistry()),
		Gatherer: promclient.NewRegistry(),
		Logger:   zap.New(core),
	})

	doRequest(s.Handler(), http.MethodGet, "/health", "", "")

	entries := logs.FilterMessage("HTTP request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d request entries, want 1", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel {
		t.Errorf("level = %s, want debug", entries[0].Level)
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("status field = %v, want 200", got)
	}
}
