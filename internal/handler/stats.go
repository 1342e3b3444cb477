package handler

import (
	"net/http"

	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminStats returns the dashboard numbers: order counts per status, paid
// revenue, catalog size and queue of pending top-ups.
func AdminStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type statusCount struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		}
		var byStatus []statusCount
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&byStatus).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query stats")
			return
		}

		// revenue counts paid, non-cancelled orders
		var revenueCent int64
		if err := db.Model(&models.Order{}).
			Where("payment_status = ? AND status <> ?",
				models.OrderPaymentPaid, models.OrderStatusCancelled).
			Select("COALESCE(SUM(total_cent), 0)").
			Scan(&revenueCent).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query stats")
			return
		}

		var productCount, activeProductCount, userCount, pendingTopups int64
		db.Model(&models.Product{}).Count(&productCount)
		db.Model(&models.Product{}).Where("is_active = ?", true).Count(&activeProductCount)
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.TopupRequest{}).
			Where("status = ?", models.TopupStatusPending).
			Count(&pendingTopups)

		util.Success(c, util.Response{
			"ordersByStatus": byStatus,
			"revenueCent":    revenueCent,
			"revenue":        util.FormatCents(revenueCent),
			"products":       productCount,
			"activeProducts": activeProductCount,
			"users":          userCount,
			"pendingTopups":  pendingTopups,
		})
	}
}
