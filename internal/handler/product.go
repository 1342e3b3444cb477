package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductHandler serves the catalog and the admin product CRUD.
type ProductHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewProductHandler(db *gorm.DB, pageSize int) *ProductHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ProductHandler{DB: db, PageSize: pageSize}
}

type productResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCent   int64     `json:"priceCent"`
	Price       string    `json:"price"` // two-decimal string for display
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProductResp(p *models.Product) productResp {
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCent:   p.PriceCent,
		Price:       util.FormatCents(p.PriceCent),
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// pageParams reads page / page_size query params with the usual clamps.
func (h *ProductHandler) pageParams(c *gin.Context) (page, size, offset int) {
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

// ---------- customer-facing catalog ----------

// List returns active products with search, category filter, sort and
// pagination.
func (h *ProductHandler) List(c *gin.Context) {
	page, size, offset := h.pageParams(c)

	base := h.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("name LIKE ?", "%"+q+"%")
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		base = base.Where("category = ?", cat)
	}

	orderBy := "created_at DESC, id DESC"
	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		orderBy = "price_cent ASC, id ASC"
	case "price_desc":
		orderBy = "price_cent DESC, id DESC"
	case "name":
		orderBy = "name ASC, id ASC"
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query products")
		return
	}

	var products []models.Product
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(size).
		Offset(offset).
		Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query products")
		return
	}

	items := make([]productResp, 0, len(products))
	for i := range products {
		items = append(items, toProductResp(&products[i]))
	}

	util.Success(c, util.Response{
		"products": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"size":  size,
		},
	})
}

// Get returns one active product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query product")
		}
		return
	}

	util.Success(c, util.Response{"product": toProductResp(&product)})
}

// ---------- admin CRUD ----------

type productReq struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Category    string `json:"category" binding:"max=64"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl" binding:"max=255"`
	IsActive    *bool  `json:"isActive"`
}

func (h *ProductHandler) validateProductReq(c *gin.Context, req *productReq) (int64, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return 0, false
	}
	priceCent, err := util.ParseCents(req.Price)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid price")
		return 0, false
	}
	if req.Stock < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "stock must not be negative")
		return 0, false
	}
	return priceCent, true
}

// AdminList returns all products including inactive ones.
func (h *ProductHandler) AdminList(c *gin.Context) {
	page, size, offset := h.pageParams(c)

	base := h.DB.Model(&models.Product{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("name LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query products")
		return
	}

	var products []models.Product
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&products).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query products")
		return
	}

	items := make([]productResp, 0, len(products))
	for i := range products {
		items = append(items, toProductResp(&products[i]))
	}

	util.Success(c, util.Response{
		"products": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"size":  size,
		},
	})
}

// Create adds a new catalog product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	priceCent, ok := h.validateProductReq(c, &req)
	if !ok {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCent:   priceCent,
		Category:    strings.TrimSpace(req.Category),
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create product")
		return
	}

	util.Created(c, util.Response{"product": toProductResp(&product)})
}

// Update edits an existing product.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	priceCent, ok := h.validateProductReq(c, &req)
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query product")
		}
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.PriceCent = priceCent
	product.Category = strings.TrimSpace(req.Category)
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&product).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update product")
		return
	}

	util.Success(c, util.Response{"product": toProductResp(&product)})
}

// Delete soft-deletes a product by clearing its active flag, keeping order
// snapshots and history intact.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	res := h.DB.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete product")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		return
	}

	util.Success(c, util.Response{"message": "product deactivated"})
}
