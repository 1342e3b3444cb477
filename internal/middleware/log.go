package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bodies on these paths are secrets end to end and are never recorded
var credentialPaths = map[string]bool{
	"/api/profile/password": true,
}

// redactBody masks password-bearing JSON fields before the body is stored.
// Non-JSON bodies pass through unchanged; credential paths return "".
func redactBody(path string, body []byte) string {
	if credentialPaths[path] {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}
	redacted := false
	for k := range fields {
		if strings.Contains(strings.ToLower(k), "password") {
			fields[k] = json.RawMessage(`"[redacted]"`)
			redacted = true
		}
	}
	if !redacted {
		return string(body)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(out)
}

// AuditMiddleware writes an audit row for every authenticated mutating
// request (POST/PUT/DELETE). Read-only traffic is not recorded.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// capture the body so the handler can still read it
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		// only record actions of logged-in users
		if userID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			if body := redactBody(path, bodyBytes); body != "" {
				action += " " + body
			}
		}

		log := models.AuditLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&log).Error
	}
}
