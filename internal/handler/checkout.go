package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/cart"
	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pricing policy, fixed: flat 8% tax, flat 10.00 shipping waived when the
// subtotal exceeds 50.00.
const (
	taxRatePercent       = 8
	freeShippingOverCent = 5000
	flatShippingCent     = 1000
)

func taxFor(subtotalCent int64) int64 {
	// round half up on the cent
	return (subtotalCent*taxRatePercent + 50) / 100
}

func shippingFor(subtotalCent int64) int64 {
	if subtotalCent > freeShippingOverCent {
		return 0
	}
	return flatShippingCent
}

func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102") + "-" +
		strings.ToUpper(uuid.New().String()[:8])
}

type shippingAddressReq struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

type placeOrderReq struct {
	ShippingAddress shippingAddressReq `json:"shippingAddress"`
}

func insufficientStockErr(name string, available, requested int) *bizError {
	return &bizError{
		status: http.StatusBadRequest,
		code:   util.CodeInvalidParam,
		msg: fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
			name, available, requested),
	}
}

func insufficientBalanceErr(needCent, haveCent int64) *bizError {
	return &bizError{
		status: http.StatusBadRequest,
		code:   util.CodeInvalidParam,
		msg: fmt.Sprintf("insufficient balance: need %s, have %s",
			util.FormatCents(needCent), util.FormatCents(haveCent)),
	}
}

// PlaceOrder converts the current cart into an order, paying from the
// wallet. Everything after validation happens in one DB transaction.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	order, err := h.placeOrder(user, &req)
	if err != nil {
		var be *bizError
		if errors.As(err, &be) {
			util.Error(c, be.status, be.code, be.msg)
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to place order")
		}
		return
	}

	util.Created(c, util.Response{"order": toOrderResp(order)})
}

// placeOrder runs the checkout: validate address, cart, product
// availability, stock and balance in that order, each with its own error;
// then commit order insert, stock decrements, wallet debit, ledger append
// and cart clear atomically. The stock and balance writes are conditional
// so a concurrent checkout cannot oversell or overdraw: a rejected
// conditional write rolls back the whole transaction.
func (h *OrderHandler) placeOrder(user *models.User, req *placeOrderReq) (*models.Order, error) {
	// 1) shipping address: all five fields required after trimming
	addr := &req.ShippingAddress
	addr.Name = strings.TrimSpace(addr.Name)
	addr.Address = strings.TrimSpace(addr.Address)
	addr.City = strings.TrimSpace(addr.City)
	addr.PostalCode = strings.TrimSpace(addr.PostalCode)
	addr.Phone = strings.TrimSpace(addr.Phone)
	for _, f := range []struct {
		name, value string
	}{
		{"shipping name", addr.Name},
		{"shipping address", addr.Address},
		{"shipping city", addr.City},
		{"shipping postal code", addr.PostalCode},
		{"shipping phone", addr.Phone},
	} {
		if err := util.RequireField(f.name, f.value); err != nil {
			return nil, &bizError{http.StatusBadRequest, util.CodeInvalidParam, err.Error()}
		}
	}

	// 2) cart must not be empty
	owner := cartOwnerKey(user.ID)
	lines, err := h.Carts.Items(owner)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &bizError{http.StatusBadRequest, util.CodeInvalidParam, "cart is empty"}
	}

	// 3+4) every product active, every quantity coverable by current stock;
	// prices are read here, never from the cart
	type pricedLine struct {
		product  models.Product
		quantity int
	}
	priced := make([]pricedLine, 0, len(lines))
	var subtotalCent int64
	for _, ln := range lines {
		var product models.Product
		err := h.DB.First(&product, ln.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &bizError{http.StatusBadRequest, util.CodeInvalidParam,
				fmt.Sprintf("product %d is no longer available", ln.ProductID)}
		}
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, &bizError{http.StatusBadRequest, util.CodeInvalidParam,
				fmt.Sprintf("product %q is no longer available", product.Name)}
		}
		if ln.Quantity > product.Stock {
			return nil, insufficientStockErr(product.Name, product.Stock, ln.Quantity)
		}
		subtotalCent += product.PriceCent * int64(ln.Quantity)
		priced = append(priced, pricedLine{product: product, quantity: ln.Quantity})
	}

	taxCent := taxFor(subtotalCent)
	shippingCent := shippingFor(subtotalCent)
	totalCent := subtotalCent + taxCent + shippingCent

	// 5) wallet must cover the total
	wallet, err := walletFor(h.DB, user.ID)
	if err != nil {
		return nil, err
	}
	if wallet.BalanceCent < totalCent {
		return nil, insufficientBalanceErr(totalCent, wallet.BalanceCent)
	}

	order := &models.Order{
		UserID:             user.ID,
		OrderNumber:        newOrderNumber(),
		SubtotalCent:       subtotalCent,
		TaxCent:            taxCent,
		ShippingCent:       shippingCent,
		TotalCent:          totalCent,
		Status:             models.OrderStatusPending,
		PaymentMethod:      models.OrderPaymentWallet,
		PaymentStatus:      models.OrderPaymentPaid,
		ShippingName:       addr.Name,
		ShippingAddress:    addr.Address,
		ShippingCity:       addr.City,
		ShippingPostalCode: addr.PostalCode,
		ShippingPhone:      addr.Phone,
	}
	for _, pl := range priced {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    pl.product.ID,
			ProductName:  pl.product.Name,
			ProductImage: pl.product.ImageURL,
			PriceCent:    pl.product.PriceCent,
			Quantity:     pl.quantity,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// conditional decrement: refuses to take stock below zero
		for _, pl := range priced {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", pl.product.ID, pl.quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", pl.quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				// a concurrent checkout got here first; report fresh numbers
				var fresh models.Product
				available := 0
				if tx.First(&fresh, pl.product.ID).Error == nil {
					available = fresh.Stock
				}
				return insufficientStockErr(pl.product.Name, available, pl.quantity)
			}
		}

		// conditional debit: refuses to take the balance below zero
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND balance_cent >= ?", wallet.ID, totalCent).
			UpdateColumn("balance_cent", gorm.Expr("balance_cent - ?", totalCent))
		if res.Error != nil {
			return fmt.Errorf("debit wallet: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var fresh models.Wallet
			var have int64
			if tx.First(&fresh, wallet.ID).Error == nil {
				have = fresh.BalanceCent
			}
			return insufficientBalanceErr(totalCent, have)
		}

		txn := models.WalletTransaction{
			WalletID:    wallet.ID,
			Type:        models.TxTypePurchase,
			AmountCent:  -totalCent,
			Description: "payment for order " + order.OrderNumber,
			Status:      models.TxStatusCompleted,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}

		// clear the cart inside the same commit
		carts := h.Carts
		if j, ok := carts.(cart.TxJoiner); ok {
			carts = j.WithTx(tx)
		}
		if err := carts.Clear(owner); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
