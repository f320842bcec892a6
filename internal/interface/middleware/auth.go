package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/pkg/helpers"
	"github.com/medibook/medibook-api/pkg/response"
)

const CtxAccountIDKey = "accountID"

// Auth extracts the bearer token from the Authorization header and verifies
// it. Sessions are stateless: the signature and expiry are the whole check,
// there is no server-side session store to consult. Expired and malformed
// tokens collapse to the same generic 401 at this boundary.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, "missing token")
			return
		}
		uid, err := jwt.Verify(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(CtxAccountIDKey, uid)
		c.Next()
	}
}

// BearerToken returns the token portion of an "Authorization: Bearer <token>"
// header, or "" when absent.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
