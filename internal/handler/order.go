package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/cart"
	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderHandler serves checkout, order history and the admin order workflow.
type OrderHandler struct {
	DB       *gorm.DB
	Carts    cart.Store
	PageSize int
}

func NewOrderHandler(db *gorm.DB, carts cart.Store, pageSize int) *OrderHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &OrderHandler{DB: db, Carts: carts, PageSize: pageSize}
}

type orderItemResp struct {
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"name"`
	ProductImage string `json:"image"`
	PriceCent    int64  `json:"priceCent"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

type orderResp struct {
	ID            uint            `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Items         []orderItemResp `json:"items"`
	SubtotalCent  int64           `json:"subtotalCent"`
	Subtotal      string          `json:"subtotal"`
	TaxCent       int64           `json:"taxCent"`
	Tax           string          `json:"tax"`
	ShippingCent  int64           `json:"shippingCent"`
	Shipping      string          `json:"shipping"`
	TotalCent     int64           `json:"totalCent"`
	Total         string          `json:"total"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	ShippingTo    gin.H           `json:"shippingAddress"`
	Tracking      string          `json:"trackingNumber"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toOrderResp(o *models.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResp{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			PriceCent:    it.PriceCent,
			Price:        util.FormatCents(it.PriceCent),
			Quantity:     it.Quantity,
		})
	}
	return orderResp{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Items:         items,
		SubtotalCent:  o.SubtotalCent,
		Subtotal:      util.FormatCents(o.SubtotalCent),
		TaxCent:       o.TaxCent,
		Tax:           util.FormatCents(o.TaxCent),
		ShippingCent:  o.ShippingCent,
		Shipping:      util.FormatCents(o.ShippingCent),
		TotalCent:     o.TotalCent,
		Total:         util.FormatCents(o.TotalCent),
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		ShippingTo: gin.H{
			"name":       o.ShippingName,
			"address":    o.ShippingAddress,
			"city":       o.ShippingCity,
			"postalCode": o.ShippingPostalCode,
			"phone":      o.ShippingPhone,
		},
		Tracking:  o.TrackingNumber,
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
	}
}

func (h *OrderHandler) pageParams(c *gin.Context) (page, size, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	return page, size, (page - 1) * size
}

// List returns the current user's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	page, size, offset := h.pageParams(c)

	base := h.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query orders")
		return
	}

	var orders []models.Order
	if err := base.Session(&gorm.Session{}).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&orders).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query orders")
		return
	}

	items := make([]orderResp, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResp(&orders[i]))
	}

	util.Success(c, util.Response{
		"orders": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"size":  size,
		},
	})
}

// Get returns one of the current user's orders. Orders of other users are
// indistinguishable from missing ones.
func (h *OrderHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid order id")
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "order not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query order")
		}
		return
	}

	util.Success(c, util.Response{"order": toOrderResp(&order)})
}

// ---------- admin ----------

// AdminList returns all orders with optional status filter.
func (h *OrderHandler) AdminList(c *gin.Context) {
	page, size, offset := h.pageParams(c)

	base := h.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status filter")
			return
		}
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query orders")
		return
	}

	var orders []models.Order
	if err := base.Session(&gorm.Session{}).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&orders).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query orders")
		return
	}

	items := make([]orderResp, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResp(&orders[i]))
	}

	util.Success(c, util.Response{
		"orders": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"size":  size,
		},
	})
}

type adminUpdateOrderReq struct {
	Status         *string `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	Notes          *string `json:"notes"`
}

// AdminUpdate changes status / tracking number / notes on an order. The item
// list and captured totals stay immutable. Cancelling does not restock or
// refund; that is handled out of band.
func (h *OrderHandler) AdminUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid order id")
		return
	}

	var req adminUpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if req.Status != nil && !models.ValidOrderStatus(*req.Status) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid order status")
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "order not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query order")
		}
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
		order.Status = *req.Status
	}
	if req.TrackingNumber != nil {
		tn := strings.TrimSpace(*req.TrackingNumber)
		updates["tracking_number"] = tn
		order.TrackingNumber = tn
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
		order.Notes = *req.Notes
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&order).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update order")
			return
		}
	}

	util.Success(c, util.Response{"order": toOrderResp(&order)})
}
