package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/application"
	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/pkg/helpers"
	"github.com/medibook/medibook-api/pkg/response"
	"github.com/medibook/medibook-api/pkg/validation"
)

// AuthHandler exposes signup, login and the current-session lookup.
type AuthHandler struct {
	Service *application.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userJSON is the public projection of an account. The password hash never
// leaves the service.
type userJSON struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

func toUserJSON(a *entity.Account) userJSON {
	return userJSON{
		UID:         a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        string(a.Role),
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	res, err := h.Service.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName, entity.Role(req.Role))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"token": res.Token,
		"user":  toUserJSON(res.Account),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}

	res, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  toUserJSON(res.Account),
	})
}

// Me handles GET /api/auth/me. It re-verifies the raw token through the
// service so a token for a since-deleted account comes back 404, not a stale
// success.
func (h *AuthHandler) Me(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Err(c, http.StatusUnauthorized, "missing token")
		return
	}

	acct, err := h.Service.CurrentAccount(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": toUserJSON(acct)})
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrMissingField):
		response.Err(c, http.StatusBadRequest, "missing required field")
	case errors.Is(err, application.ErrInvalidRole):
		response.Err(c, http.StatusBadRequest, "invalid role")
	case errors.Is(err, application.ErrEmailTaken):
		response.Err(c, http.StatusConflict, "email already in use")
	case errors.Is(err, application.ErrAccountNotFound):
		response.Err(c, http.StatusNotFound, "account not found")
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Err(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, helpers.ErrTokenExpired), errors.Is(err, helpers.ErrTokenInvalid):
		response.Err(c, http.StatusUnauthorized, "unauthorized")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("auth request failed")
		}
		response.Err(c, http.StatusInternalServerError, "unexpected error")
	}
}
