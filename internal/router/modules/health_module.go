package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/medibook/medibook-api/internal/interface/http"
)

// HealthModule exposes the readiness probe.
// Public: GET /api/health

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Check)
}
