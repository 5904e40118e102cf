package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dogmatch/internal/core/auth"
	resp "dogmatch/internal/transport/http/response"
)

const (
	KeyUserID = "userId" // uint, parsed from the uid claim
	KeyRole   = "role"
)

func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(KeyUserID, uid)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// UserID pulls the authenticated user out of the request context.
// 选狗引擎永远显式收 userID 参数，不从全局拿。
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok
}
