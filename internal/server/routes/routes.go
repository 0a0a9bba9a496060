package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/api/middleware"
	"github.com/lessensdelharmonie/harmonie/internal/metrics"
	"github.com/lessensdelharmonie/harmonie/internal/version"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, opts *Options) {
	SetupHealthRoutes(router, h.Health, opts)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact, opts)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.MessageNotFound, nil))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(common.MessageMethodNotAllowed, nil))
	})

	opts.Logger.Debug("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, opts *Options) {
	router.HandleMethodNotAllowed = true

	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(version.ServiceName))
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.SecurityHeaders(opts.Production))
	router.Use(middleware.Locale())
}

// TrimTrailingSlash wraps the engine so "/api/contact/" and "/api/contact"
// reach the same route. It has to run before gin's router matches the path.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path := r.URL.Path; path != "/" && strings.HasSuffix(path, "/") {
			r.URL.Path = strings.TrimRight(path, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		next.ServeHTTP(w, r)
	})
}
