package router

import (
	"github.com/bensiiint/e-commerceProjecty/internal/cart"
	"github.com/bensiiint/e-commerceProjecty/internal/config"
	"github.com/bensiiint/e-commerceProjecty/internal/handler"
	"github.com/bensiiint/e-commerceProjecty/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	jwtSecret := cfg.JWT.Secret
	pageSize := cfg.App.PageSize

	userCarts := cart.NewDBStore(db)
	guestCarts := cart.NewMemoryStore()

	api := r.Group("/api")

	// no auth required
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	productHandler := handler.NewProductHandler(db, pageSize)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	// cart works for guests too; a guest cart lives behind a device cookie
	cartHandler := handler.NewCartHandler(db, userCarts, guestCarts)
	cartRoutes := api.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuthMiddleware(jwtSecret, db))
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("", cartHandler.Add)
	cartRoutes.PUT("/:productId", cartHandler.Update)
	cartRoutes.DELETE("/:productId", cartHandler.Remove)
	cartRoutes.DELETE("", cartHandler.Clear)

	// logged-in routes
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	orderHandler := handler.NewOrderHandler(db, userCarts, pageSize)
	protected.POST("/orders", orderHandler.PlaceOrder)
	protected.GET("/orders", orderHandler.List)
	protected.GET("/orders/:id", orderHandler.Get)

	walletHandler := handler.NewWalletHandler(db)
	protected.GET("/wallet", walletHandler.Get)
	protected.POST("/wallet/topup", walletHandler.CreateTopup)
	protected.GET("/wallet/topup-requests", walletHandler.ListTopups)

	// admin routes
	admin := api.Group("")
	admin.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AdminMiddleware(),
		middleware.AuditMiddleware(db),
	)

	admin.GET("/wallet/admin/topup-requests", walletHandler.AdminListTopups)
	admin.PUT("/wallet/admin/topup-requests/:id", walletHandler.AdminReviewTopup)

	admin.GET("/admin/orders", orderHandler.AdminList)
	admin.PUT("/admin/orders/:id", orderHandler.AdminUpdate)

	exportHandler := handler.NewExportHandler(db)
	admin.GET("/admin/orders/export", exportHandler.Orders)
	admin.GET("/admin/stats", handler.AdminStats(db))

	admin.GET("/admin/products", productHandler.AdminList)
	admin.POST("/admin/products", productHandler.Create)
	admin.PUT("/admin/products/:id", productHandler.Update)
	admin.DELETE("/admin/products/:id", productHandler.Delete)

	return r
}
