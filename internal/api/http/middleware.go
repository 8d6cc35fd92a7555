package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// adminClaims is the JWT claim set the admin-only match endpoint
// requires.
type adminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AdminAuth requires a valid Bearer JWT with admin=true before letting
// the request reach the match handler. The engine itself still checks
// sender==cfg.Admin, so this is defense in depth, not the authority.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorDTO{Error: "missing bearer token"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorDTO{Error: "invalid token"})
			return
		}
		if !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, errorDTO{Error: "admin claim required"})
			return
		}
		c.Next()
	}
}
