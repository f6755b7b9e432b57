package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/anandmuthunayagam/Mahizh/internal/util"

	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// Auth verifies the bearer token and puts the decoded claims into the
// context. When roles are given, the decoded role must be one of them;
// that check runs only after signature verification, so a bad token is
// always 401 and a good token with the wrong role is 403.
func Auth(jwtSecret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) URL query ?token=xxx, for attachment downloads where the
		// client cannot set headers
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "no token provided")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid token")
			c.Abort()
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				util.Error(c, http.StatusForbidden, util.CodeForbidden, "access denied")
				c.Abort()
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified token claims set by Auth.
func CurrentClaims(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
