package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/container"
	handlers "github.com/medibook/medibook-api/internal/interface/http"
	"github.com/medibook/medibook-api/internal/interface/middleware"
	"github.com/medibook/medibook-api/pkg/helpers"
)

// AppointmentModule wires booking CRUD. Every route requires a session.

type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	JWT     *helpers.JWTManager
}

func NewAppointmentModule(h *handlers.AppointmentHandler, jwt *helpers.JWTManager) *AppointmentModule {
	return &AppointmentModule{Handler: h, JWT: jwt}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	appts := rg.Group("/appointments")
	appts.Use(middleware.Auth(m.JWT))
	appts.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID()))
	{
		appts.POST("", m.Handler.Create)
		appts.GET("", m.Handler.List)
		appts.PUT("/:id", m.Handler.Update)
		appts.DELETE("/:id", m.Handler.Cancel)
	}
}
