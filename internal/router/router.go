package router

import (
	"errors"
	"fmt"
	"net/http"

	docs "github.com/cashbook/backend/api"
	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/controllers/healthz"
	"github.com/cashbook/backend/internal/controllers/root"
	v1 "github.com/cashbook/backend/internal/controllers/v1"
	"github.com/cashbook/backend/internal/controllers/version"
	"github.com/cashbook/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time.
var buildVersion = "0.0.0"

var errMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")

// Config sets up the gin engine with all middlewares.
//
// The returned function unregisters the Prometheus metrics and must be
// called when the engine is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Debug().Msg("Prometheus metrics were not registered")
		}
	}

	url, err := cfg.URL()
	if err != nil {
		return nil, teardown, fmt.Errorf("API_URL is invalid: %w", err)
	}

	if err := registerPrometheusMetrics(); err != nil {
		return nil, teardown, err
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		httputil.AbortWithError(c, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if origins := cfg.AllowOrigins(); len(origins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", origins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", buildVersion).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Cashbook"
	docs.SwaggerInfo.Version = buildVersion
	docs.SwaggerInfo.Description = "The backend for Cashbook, a personal income and expense ledger."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(cfg config.Config, group *gin.RouterGroup) {
	root.RegisterRoutes(group.Group(""))
	version.RegisterRoutes(group.Group("/version"), buildVersion)
	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	co := v1.Controller{
		Guard: auth.NewGuard(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost),
	}
	co.RegisterRoutes(group.Group("/v1"))
}
