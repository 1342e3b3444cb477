package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler produces order reports for the admin console.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadOrders(c *gin.Context) ([]models.Order, bool) {
	base := h.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status filter")
			return nil, false
		}
		base = base.Where("status = ?", status)
	}

	var orders []models.Order
	if err := base.Order("created_at DESC").Find(&orders).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query orders")
		return nil, false
	}
	return orders, true
}

// Orders exports all orders as csv (default) or xlsx.
func (h *ExportHandler) Orders(c *gin.Context) {
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		h.ordersCSV(c)
	case "xlsx":
		h.ordersXLSX(c)
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be csv or xlsx")
	}
}

var exportHeaders = []string{
	"Order number", "User ID", "Subtotal", "Tax", "Shipping", "Total",
	"Status", "Payment status", "Tracking", "Created",
}

func exportRow(o *models.Order) []string {
	return []string{
		o.OrderNumber,
		strconv.FormatUint(uint64(o.UserID), 10),
		util.FormatCents(o.SubtotalCent),
		util.FormatCents(o.TaxCent),
		util.FormatCents(o.ShippingCent),
		util.FormatCents(o.TotalCent),
		o.Status,
		o.PaymentStatus,
		o.TrackingNumber,
		o.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (h *ExportHandler) ordersCSV(c *gin.Context) {
	orders, ok := h.loadOrders(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel opens it correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range orders {
		writer.Write(exportRow(&orders[i]))
	}
}

func (h *ExportHandler) ordersXLSX(c *gin.Context) {
	orders, ok := h.loadOrders(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Orders"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, head := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, head)
	}
	for idx := range orders {
		row := exportRow(&orders[idx])
		for i, val := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, idx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "F", 10)
	f.SetColWidth(sheetName, "G", "J", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to export")
	}
}
