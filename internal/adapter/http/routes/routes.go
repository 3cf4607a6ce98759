package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "scmicro_tracker/docs" // generated by swag init
	"scmicro_tracker/internal/adapter/http/handlers"
	"scmicro_tracker/internal/adapter/persistence"
	"scmicro_tracker/internal/domain/classification"
	"scmicro_tracker/internal/infrastructure/config"
	"scmicro_tracker/internal/infrastructure/logging"
	"scmicro_tracker/internal/infrastructure/metrics"
	"scmicro_tracker/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.MustNew(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = logger.Sync() }()

	repos, err := persistence.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}

	ingestionUseCase := usecase.NewIngestionUseCase(
		repos.Customers,
		repos.WorkOrders,
		repos.Projects,
		classification.Default(cfg.StrategicAccounts),
		metrics.NewIngestionMetrics(prometheus.DefaultRegisterer),
		logger,
		cfg.MaxUploadBytes,
	)
	ingestionHandler := handlers.NewIngestionHandler(ingestionUseCase, cfg.MaxUploadBytes, logger)

	router := NewRouter(cfg, ingestionHandler, promhttp.Handler(), logger)

	logger.Info("starting http server", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to startup the application", zap.Error(err))
	}
}

func NewRouter(cfg config.Config, ingestionHandler *handlers.IngestionHandler, metricsHandler http.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET(cfg.MetricsPath, gin.WrapH(metricsHandler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addImportRoutes(v1, ingestionHandler)

	return router
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(requestLogger(logger.Named("http")))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
