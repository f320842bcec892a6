package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/container"
	handlers "github.com/medibook/medibook-api/internal/interface/http"
	"github.com/medibook/medibook-api/internal/interface/middleware"
	"github.com/medibook/medibook-api/pkg/helpers"
)

// RecordModule wires medical record CRUD and attachment upload. Every route
// requires a session.

type RecordModule struct {
	Handler *handlers.RecordHandler
	JWT     *helpers.JWTManager
}

func NewRecordModule(h *handlers.RecordHandler, jwt *helpers.JWTManager) *RecordModule {
	return &RecordModule{Handler: h, JWT: jwt}
}

func (m *RecordModule) Register(rg *gin.RouterGroup) {
	records := rg.Group("/medical-records")
	records.Use(middleware.Auth(m.JWT))
	records.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID()))
	{
		records.POST("", m.Handler.Create)
		records.GET("", m.Handler.List)
		records.PUT("/:id", m.Handler.Update)
		records.DELETE("/:id", m.Handler.Delete)
		records.POST("/:id/attachments", m.Handler.AddAttachment)
	}
}
