package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scmicro_tracker/internal/adapter/http/handlers"
	"scmicro_tracker/internal/adapter/persistence/memory"
	"scmicro_tracker/internal/infrastructure/config"
	"scmicro_tracker/internal/infrastructure/metrics"
	"scmicro_tracker/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	store := memory.NewStore()
	uc := usecase.NewIngestionUseCase(store.Customers(), store.WorkOrders(), store.Projects(), nil, metrics.NewIngestionMetrics(reg), nil, 0)
	h := handlers.NewIngestionHandler(uc, usecase.DefaultMaxUploadBytes, nil)

	cfg := config.Config{MetricsPath: "/metrics"}
	return NewRouter(cfg, h, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), zap.NewNop())
}

func TestNewRouter(t *testing.T) {
	r := testRouter(t)

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
			t.Fatalf("unexpected ping response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("template", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/imports/template?type=work_orders", nil))
		if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "Date Entered,Customer") {
			t.Fatalf("unexpected template response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
