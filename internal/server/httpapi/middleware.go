package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/murof-net/auth/internal/common"
)

// accessTokenKey is the gin context key under which bearerToken stores the
// raw access token.
const accessTokenKey = "access_token"

// bearerToken extracts the access token from the Authorization header and
// stores it in the request context. Requests without a well-formed bearer
// header are rejected before reaching the handler.
func (s *Server) bearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// unauthorized writes a 401 with the standard bearer challenge header.
func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
