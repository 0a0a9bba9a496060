package routes

import (
	"github.com/lessensdelharmonie/harmonie/internal/api/handlers"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Options carries the settings routes and middleware are built from
type Options struct {
	Logger         *logging.Logger
	AllowedOrigins []string
	MaxBodyBytes   int64
	Production     bool
	MetricsEnabled bool
}
