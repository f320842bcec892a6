package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/container"
	handlers "github.com/medibook/medibook-api/internal/interface/http"
	"github.com/medibook/medibook-api/internal/interface/middleware"
)

// DoctorModule exposes the read-only directory.
// Public: GET /api/doctors, GET /api/doctors/specialties, GET /api/doctors/:id

type DoctorModule struct {
	Handler *handlers.DoctorHandler
}

func NewDoctorModule(h *handlers.DoctorHandler) *DoctorModule {
	return &DoctorModule{Handler: h}
}

func (m *DoctorModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())

	doctors := rg.Group("/doctors")
	doctors.Use(limiter)
	{
		doctors.GET("", m.Handler.List)
		doctors.GET("/specialties", m.Handler.Specialties)
		doctors.GET("/:id", m.Handler.Get)
	}
}
