package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/handlers"
	"github.com/lessensdelharmonie/harmonie/internal/api/middleware"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, opts *Options) {
	public := router.Group("/contact")
	{
		public.POST("",
			middleware.LimitRequestBody(opts.MaxBodyBytes, opts.Logger),
			contact.Submit,
		)
		public.GET("/schema", contact.Schema)
	}
}
