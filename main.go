package main

import (
	stdlog "log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/crmplanner/api/api/v1"
	"github.com/crmplanner/api/config"
	"github.com/crmplanner/api/database"
	"github.com/crmplanner/api/logger"
	"github.com/crmplanner/api/metrics"
	"github.com/crmplanner/api/middleware"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Log.Level, cfg.Server.Env); err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	log := logger.Get()
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.Middleware())

	httpMetrics := metrics.NewHTTPMetrics("crm-api")
	router.Use(httpMetrics.Middleware())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:              cfg.CORS.AllowedOrigins,
		AllowMethods:              cfg.CORS.AllowedMethods,
		AllowHeaders:              cfg.CORS.AllowedHeaders,
		AllowCredentials:          true,
		MaxAge:                    cfg.CORS.MaxAge,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	api := v1.NewAPI(db, cfg.JWT)
	api.RegisterRoutes(router)
	api.RegisterLegacyRoutes(router)

	log.Info("starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Env),
	)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
