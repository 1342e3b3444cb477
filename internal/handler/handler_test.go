package handler

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bensiiint/e-commerceProjecty/internal/cart"
	"github.com/bensiiint/e-commerceProjecty/internal/config"
	"github.com/bensiiint/e-commerceProjecty/internal/database"
	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh sqlite database in a per-test temp dir and runs
// the real migrations against it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "shop_test.db"),
		LogMode: false,
	}

	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		PasswordHash: "not-checked-here",
		DisplayName:  username,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, priceCent int64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Name:      name,
		PriceCent: priceCent,
		Category:  "test",
		Stock:     stock,
		IsActive:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func fundWallet(t *testing.T, db *gorm.DB, userID uint, balanceCent int64) *models.Wallet {
	t.Helper()

	wallet := models.Wallet{UserID: userID, BalanceCent: balanceCent}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet failed: %v", err)
	}
	return &wallet
}

func seedCart(t *testing.T, db *gorm.DB, user *models.User, productID uint, qty int) {
	t.Helper()

	if err := cart.NewDBStore(db).Add(cartOwnerKey(user.ID), productID, qty); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}
}

func newTestOrderHandler(db *gorm.DB) *OrderHandler {
	return NewOrderHandler(db, cart.NewDBStore(db), 20)
}

func shipTo() *placeOrderReq {
	return &placeOrderReq{
		ShippingAddress: shippingAddressReq{
			Name:       "Test Buyer",
			Address:    "1 Main Street",
			City:       "Springfield",
			PostalCode: "12345",
			Phone:      "555-0100",
		},
	}
}

// performJSON invokes a gin handler directly with a JSON body, URL params
// and the given logged-in user, and returns the recorder.
func performJSON(t *testing.T, h gin.HandlerFunc, method, body string, params gin.Params, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if user != nil {
		c.Set("currentUser", user)
	}

	h(c)
	return w
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
