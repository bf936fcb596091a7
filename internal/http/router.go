package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/facilities-pm/backend/internal/cache"
	"github.com/facilities-pm/backend/internal/config"
	"github.com/facilities-pm/backend/internal/http/handlers"
	"github.com/facilities-pm/backend/internal/http/middleware"
	"github.com/facilities-pm/backend/internal/service"

	_ "github.com/facilities-pm/backend/docs"
)

// Deps are the collaborators the router hands to handlers. Store and Cache
// may be nil.
type Deps struct {
	Engine   *service.Engine
	Store    handlers.Pinger
	Cache    cache.Cache
	Gatherer prometheus.Gatherer
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", middleware.CacheHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Engine:    deps.Engine,
		Store:     deps.Store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	pm := r.Group("/api/pm")
	pm.Use(middleware.Timeout(cfg.RequestTimeout))
	pm.Use(middleware.Cache(deps.Cache, logger))
	{
		pm.GET("/metrics", h.PMMetrics)
		pm.GET("/recommendations", h.Recommendations)
		pm.GET("/calendar", h.Calendar)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
