package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"kind-link-bridge/internal/core/auth"
	resp "kind-link-bridge/internal/transport/http/response"
)

// KeyUserID holds the authenticated uid (int64) in the gin context.
const KeyUserID = "uid"

// AuthJWT rejects requests without a valid bearer token.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			abort(c, resp.KindUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			abort(c, resp.KindUnauthorized, "invalid token")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Next()
	}
}

func abort(c *gin.Context, kind, msg string) {
	c.AbortWithStatusJSON(resp.Status(kind), resp.Error(kind, msg))
}
