package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTopupRequest(t *testing.T, db *gorm.DB, userID uint, amountCent int64) *models.TopupRequest {
	t.Helper()

	topup := models.TopupRequest{
		UserID:        userID,
		AmountCent:    amountCent,
		PaymentMethod: models.PaymentMethodBankTransfer,
		PaymentProof:  "transfer-ref-001",
		Status:        models.TopupStatusPending,
	}
	if err := db.Create(&topup).Error; err != nil {
		t.Fatalf("create topup request failed: %v", err)
	}
	return &topup
}

func idParam(id uint) gin.Params {
	return gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(id), 10)}}
}

func TestReviewTopup_ApproveCreditsWalletOnce(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	user := createTestUser(t, db, "saver", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	topup := createTopupRequest(t, db, user.ID, 5000)

	w := performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"approved","adminNotes":"proof checked"}`, idParam(topup.ID), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.TopupRequest
	require.NoError(t, db.First(&stored, topup.ID).Error)
	assert.Equal(t, models.TopupStatusApproved, stored.Status)
	assert.Equal(t, "proof checked", stored.AdminNotes)
	require.NotNil(t, stored.ProcessedBy)
	assert.Equal(t, admin.ID, *stored.ProcessedBy)
	assert.NotNil(t, stored.ProcessedAt)

	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.Equal(t, int64(5000), wallet.BalanceCent)

	var txns []models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", wallet.ID).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TxTypeTopup, txns[0].Type)
	assert.Equal(t, int64(5000), txns[0].AmountCent)
	assert.Contains(t, txns[0].Description, models.PaymentMethodBankTransfer)
}

func TestReviewTopup_SecondApproveFails(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	user := createTestUser(t, db, "saver", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	topup := createTopupRequest(t, db, user.ID, 5000)

	w := performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"approved"}`, idParam(topup.ID), admin)
	require.Equal(t, http.StatusOK, w.Code)

	// second review of the same request must be rejected and not credit again
	w = performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"approved"}`, idParam(topup.ID), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")

	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.Equal(t, int64(5000), wallet.BalanceCent)
	assert.Equal(t, int64(1), countRows(t, db, &models.WalletTransaction{}))
}

func TestReviewTopup_RejectNeverTouchesWallet(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	user := createTestUser(t, db, "saver", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	topup := createTopupRequest(t, db, user.ID, 5000)

	w := performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"rejected","adminNotes":"proof unreadable"}`, idParam(topup.ID), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.TopupRequest
	require.NoError(t, db.First(&stored, topup.ID).Error)
	assert.Equal(t, models.TopupStatusRejected, stored.Status)

	// no wallet credit, no ledger entry
	var wallet models.Wallet
	err := db.Where("user_id = ?", user.ID).First(&wallet).Error
	if err == nil {
		assert.Zero(t, wallet.BalanceCent)
	} else {
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}
	assert.Zero(t, countRows(t, db, &models.WalletTransaction{}))

	// rejection is terminal too
	w = performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"approved"}`, idParam(topup.ID), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")
}

func TestReviewTopup_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	user := createTestUser(t, db, "saver", models.RoleUser)
	admin := createTestUser(t, db, "boss", models.RoleAdmin)
	topup := createTopupRequest(t, db, user.ID, 5000)

	w := performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"done"}`, idParam(topup.ID), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.TopupRequest
	require.NoError(t, db.First(&stored, topup.ID).Error)
	assert.Equal(t, models.TopupStatusPending, stored.Status)
}

func TestReviewTopup_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	admin := createTestUser(t, db, "boss", models.RoleAdmin)

	w := performJSON(t, h.AdminReviewTopup, http.MethodPut,
		`{"status":"approved"}`, idParam(999), admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTopup_Validation(t *testing.T) {
	db := setupTestDB(t)
	h := NewWalletHandler(db)

	user := createTestUser(t, db, "saver", models.RoleUser)

	cases := []struct {
		name string
		body string
	}{
		{"amount below minimum", `{"amount":0.5,"paymentMethod":"paypal","paymentProof":"p"}`},
		{"bad method", `{"amount":10,"paymentMethod":"cash","paymentProof":"p"}`},
		{"missing proof", `{"amount":10,"paymentMethod":"paypal","paymentProof":" "}`},
	}
	for _, tc := range cases {
		w := performJSON(t, h.CreateTopup, http.MethodPost, tc.body, nil, user)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.name)
	}
	assert.Zero(t, countRows(t, db, &models.TopupRequest{}))

	w := performJSON(t, h.CreateTopup, http.MethodPost,
		`{"amount":25.5,"paymentMethod":"credit_card","paymentProof":"slip-9"}`, nil, user)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.TopupRequest
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, int64(2550), stored.AmountCent)
	assert.Equal(t, models.TopupStatusPending, stored.Status)
}
