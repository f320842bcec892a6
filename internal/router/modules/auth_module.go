package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/container"
	handlers "github.com/medibook/medibook-api/internal/interface/http"
	"github.com/medibook/medibook-api/internal/interface/middleware"
	"github.com/medibook/medibook-api/pkg/helpers"
)

// AuthModule wires the auth handlers and JWT middleware into routes
// Public: POST /api/auth/signup, POST /api/auth/login
// Protected: GET /api/auth/me

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath()) // 10 req/min per IP
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath())  // 20 req/min per IP

	auth := rg.Group("/auth")
	auth.POST("/signup", signupLimiter, m.Handler.Signup)
	auth.POST("/login", loginLimiter, m.Handler.Login)

	protected := auth.Group("/")
	protected.Use(middleware.Auth(m.JWT))
	{
		protected.GET("/me", m.Handler.Me)
	}
}
