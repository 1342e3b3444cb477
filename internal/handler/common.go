package handler

import (
	"fmt"

	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser returns the user placed in context by AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// cartOwnerKey is the cart owner key for a logged-in user.
func cartOwnerKey(userID uint) string {
	return fmt.Sprintf("u:%d", userID)
}

// bizError is a business-rule violation with the HTTP mapping attached, so
// the checkout / review transactions can abort with a specific reason.
type bizError struct {
	status int
	code   int
	msg    string
}

func (e *bizError) Error() string { return e.msg }

// walletFor loads the user's wallet, creating an empty one on first use.
func walletFor(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := db.Where(models.Wallet{UserID: userID}).
		FirstOrCreate(&w).Error; err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	return &w, nil
}
