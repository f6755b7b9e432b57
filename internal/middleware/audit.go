package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/anandmuthunayagam/Mahizh/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit records mutating requests by authenticated callers. Must run
// after Auth so the claims are available.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// read and restore the request body
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}
		claims, ok := CurrentClaims(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			Role:      claims.Role,
			ActorID:   claims.UserID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
