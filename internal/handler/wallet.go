package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WalletHandler serves the wallet ledger and the top-up workflow.
type WalletHandler struct {
	DB *gorm.DB
}

func NewWalletHandler(db *gorm.DB) *WalletHandler {
	return &WalletHandler{DB: db}
}

type transactionResp struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	AmountCent  int64     `json:"amountCent"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Get returns the current balance and the transaction history, newest first.
func (h *WalletHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	wallet, err := walletFor(h.DB, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load wallet")
		return
	}

	var txns []models.WalletTransaction
	if err := h.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC, id DESC").
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for _, t := range txns {
		items = append(items, transactionResp{
			ID:          t.ID,
			Type:        t.Type,
			AmountCent:  t.AmountCent,
			Amount:      util.FormatCents(t.AmountCent),
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"balanceCent":  wallet.BalanceCent,
		"balance":      util.FormatCents(wallet.BalanceCent),
		"transactions": items,
	})
}

// ---------- top-up requests ----------

type topupReq struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentProof  string  `json:"paymentProof"`
}

type topupResp struct {
	ID            uint       `json:"id"`
	AmountCent    int64      `json:"amountCent"`
	Amount        string     `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentProof  string     `json:"paymentProof"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"adminNotes"`
	ProcessedAt   *time.Time `json:"processedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toTopupResp(r *models.TopupRequest) topupResp {
	return topupResp{
		ID:            r.ID,
		AmountCent:    r.AmountCent,
		Amount:        util.FormatCents(r.AmountCent),
		PaymentMethod: r.PaymentMethod,
		PaymentProof:  r.PaymentProof,
		Status:        r.Status,
		AdminNotes:    r.AdminNotes,
		ProcessedAt:   r.ProcessedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// CreateTopup submits a funding claim for admin review.
func (h *WalletHandler) CreateTopup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req topupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amountCent := int64(req.Amount*100 + 0.5)
	if req.Amount < 1 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be at least 1.00")
		return
	}
	if err := util.ValidateAmountCents(amountCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payment method")
		return
	}
	if err := util.RequireField("payment proof", req.PaymentProof); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	topup := models.TopupRequest{
		UserID:        user.ID,
		AmountCent:    amountCent,
		PaymentMethod: req.PaymentMethod,
		PaymentProof:  req.PaymentProof,
		Status:        models.TopupStatusPending,
	}
	if err := h.DB.Create(&topup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create top-up request")
		return
	}

	util.Created(c, util.Response{"request": toTopupResp(&topup)})
}

// ListTopups returns the current user's top-up requests, newest first.
func (h *WalletHandler) ListTopups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var requests []models.TopupRequest
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query requests")
		return
	}

	items := make([]topupResp, 0, len(requests))
	for i := range requests {
		items = append(items, toTopupResp(&requests[i]))
	}

	util.Success(c, util.Response{"requests": items})
}

// AdminListTopups returns all top-up requests with optional status filter.
func (h *WalletHandler) AdminListTopups(c *gin.Context) {
	base := h.DB.Model(&models.TopupRequest{})
	if status := c.Query("status"); status != "" {
		switch status {
		case models.TopupStatusPending, models.TopupStatusApproved, models.TopupStatusRejected:
			base = base.Where("status = ?", status)
		default:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status filter")
			return
		}
	}

	var requests []models.TopupRequest
	if err := base.Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query requests")
		return
	}

	items := make([]topupResp, 0, len(requests))
	for i := range requests {
		items = append(items, toTopupResp(&requests[i]))
	}

	util.Success(c, util.Response{"requests": items})
}

type reviewTopupReq struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

// AdminReviewTopup moves a pending request to approved or rejected, both
// terminal. Approval credits the wallet and appends a topup transaction in
// the same DB transaction. The conditional status update is the guard: the
// first reviewer wins, a second attempt sees zero rows affected.
func (h *WalletHandler) AdminReviewTopup(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request id")
		return
	}

	var req reviewTopupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Status != models.TopupStatusApproved && req.Status != models.TopupStatusRejected {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status must be approved or rejected")
		return
	}

	var topup models.TopupRequest
	if err := h.DB.First(&topup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "top-up request not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query request")
		}
		return
	}
	if topup.Status != models.TopupStatusPending {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "request already processed")
		return
	}

	now := time.Now()
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TopupRequest{}).
			Where("id = ? AND status = ?", topup.ID, models.TopupStatusPending).
			Updates(map[string]interface{}{
				"status":       req.Status,
				"admin_notes":  req.AdminNotes,
				"processed_by": admin.ID,
				"processed_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("update request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &bizError{http.StatusBadRequest, util.CodeInvalidParam, "request already processed"}
		}

		// rejection is a pure audit record, only approval touches the wallet
		if req.Status != models.TopupStatusApproved {
			return nil
		}

		wallet, err := walletFor(tx, topup.UserID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Wallet{}).
			Where("id = ?", wallet.ID).
			UpdateColumn("balance_cent", gorm.Expr("balance_cent + ?", topup.AmountCent)).Error; err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		txn := models.WalletTransaction{
			WalletID:    wallet.ID,
			Type:        models.TxTypeTopup,
			AmountCent:  topup.AmountCent,
			Description: "wallet top-up via " + topup.PaymentMethod,
			Status:      models.TxStatusCompleted,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		var be *bizError
		if errors.As(err, &be) {
			util.Error(c, be.status, be.code, be.msg)
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to process request")
		}
		return
	}

	adminID := admin.ID
	topup.Status = req.Status
	topup.AdminNotes = req.AdminNotes
	topup.ProcessedBy = &adminID
	topup.ProcessedAt = &now

	util.Success(c, util.Response{"request": toTopupResp(&topup)})
}
