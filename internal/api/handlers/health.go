package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/utils"
	"github.com/lessensdelharmonie/harmonie/internal/version"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness. The service has no backing store to ping.
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleMessage(c, "Health check OK")
}

// Version returns the build information of the running binary
func (h *HealthHandler) Version(c *gin.Context) {
	utils.HandleSuccess(c, version.GetBuildInfo())
}
