package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tokenFromRequest extracts the JWT from header, query or cookie.
func tokenFromRequest(c *gin.Context) string {
	// 1) Header: Authorization: Bearer xxx
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// 2) query param ?token=xxx (downloads where headers are awkward)
	if t := c.Query("token"); t != "" {
		return t
	}

	// 3) cookie
	if cookie, err := c.Cookie("shop_token"); err == nil {
		return cookie
	}
	return ""
}

func loadUser(c *gin.Context, jwtSecret string, db *gorm.DB) (*models.User, bool) {
	tokenStr := tokenFromRequest(c)
	if tokenStr == "" {
		return nil, false
	}

	claims, err := util.ParseToken(jwtSecret, tokenStr)
	if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// AuthMiddleware validates the JWT and puts the current user into context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c, jwtSecret, db)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
			c.Abort()
			return
		}
		c.Set("currentUser", user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the current user when a valid token is
// present but lets anonymous requests through. Used by the cart routes so
// guests can keep a device-scoped cart.
func OptionalAuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := loadUser(c, jwtSecret, db); ok {
			c.Set("currentUser", user)
		}
		c.Next()
	}
}
