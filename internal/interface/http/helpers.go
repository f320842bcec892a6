package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/interface/middleware"
)

// defaultPageLimit matches the service-side page clamp for list endpoints.
const defaultPageLimit = 10

func bearerToken(c *gin.Context) string {
	return middleware.BearerToken(c)
}

func accountID(c *gin.Context) string {
	return c.GetString(middleware.CtxAccountIDKey)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
