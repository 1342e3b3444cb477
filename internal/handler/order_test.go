package handler

import (
	"net/http"
	"testing"

	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeTestOrder(t *testing.T, db *gorm.DB, h *OrderHandler, user *models.User) *models.Order {
	t.Helper()

	product := createTestProduct(t, db, "Desk Fan", 1500, 10)
	fundWallet(t, db, user.ID, 100000)
	seedCart(t, db, user, product.ID, 2)

	order, err := h.placeOrder(user, shipTo())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	return order
}

func TestGetOrder_OtherUsersOrderIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := newTestOrderHandler(db)

	owner := createTestUser(t, db, "owner", models.RoleUser)
	stranger := createTestUser(t, db, "stranger", models.RoleUser)
	order := placeTestOrder(t, db, h, owner)

	w := performJSON(t, h.Get, http.MethodGet, "", idParam(order.ID), stranger)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(t, h.Get, http.MethodGet, "", idParam(order.ID), owner)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderNumber)
}

func TestAdminUpdateOrder_StatusTrackingNotes(t *testing.T) {
	db := setupTestDB(t)
	h := newTestOrderHandler(db)

	user := createTestUser(t, db, "buyer", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	order := placeTestOrder(t, db, h, user)

	w := performJSON(t, h.AdminUpdate, http.MethodPut,
		`{"status":"shipped","trackingNumber":"TRK-42","notes":"left warehouse"}`,
		idParam(order.ID), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)
	assert.Equal(t, "TRK-42", stored.TrackingNumber)
	assert.Equal(t, "left warehouse", stored.Notes)

	// totals stay frozen
	assert.Equal(t, order.TotalCent, stored.TotalCent)
}

func TestAdminUpdateOrder_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	h := newTestOrderHandler(db)

	user := createTestUser(t, db, "buyer", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	order := placeTestOrder(t, db, h, user)

	w := performJSON(t, h.AdminUpdate, http.MethodPut,
		`{"status":"returned"}`, idParam(order.ID), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestAdminUpdateOrder_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	h := newTestOrderHandler(db)

	admin := createTestUser(t, db, "boss", models.RoleAdmin)

	w := performJSON(t, h.AdminUpdate, http.MethodPut,
		`{"status":"shipped"}`, idParam(12345), admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUpdateOrder_CancelDoesNotRestockOrRefund(t *testing.T) {
	db := setupTestDB(t)
	h := newTestOrderHandler(db)

	user := createTestUser(t, db, "buyer", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	order := placeTestOrder(t, db, h, user)

	var productBefore models.Product
	require.NoError(t, db.First(&productBefore, order.Items[0].ProductID).Error)
	var walletBefore models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&walletBefore).Error)

	w := performJSON(t, h.AdminUpdate, http.MethodPut,
		`{"status":"cancelled"}`, idParam(order.ID), admin)
	require.Equal(t, http.StatusOK, w.Code)

	// cancellation is a status change only; stock and wallet stay as they are
	var productAfter models.Product
	require.NoError(t, db.First(&productAfter, order.Items[0].ProductID).Error)
	assert.Equal(t, productBefore.Stock, productAfter.Stock)
	var walletAfter models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&walletAfter).Error)
	assert.Equal(t, walletBefore.BalanceCent, walletAfter.BalanceCent)
}
