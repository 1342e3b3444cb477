package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bensiiint/e-commerceProjecty/internal/cart"
	"github.com/bensiiint/e-commerceProjecty/internal/models"
	"github.com/bensiiint/e-commerceProjecty/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const guestCartCookie = "guest_cart"

// CartHandler serves the cart for both logged-in users (db-backed) and
// guests (in-memory, keyed by a device token cookie).
type CartHandler struct {
	DB     *gorm.DB
	Users  cart.Store
	Guests cart.Store
}

func NewCartHandler(db *gorm.DB, users, guests cart.Store) *CartHandler {
	return &CartHandler{DB: db, Users: users, Guests: guests}
}

// resolve picks the store and owner key for this request. Guests without a
// cart token get one issued here.
func (h *CartHandler) resolve(c *gin.Context) (cart.Store, string) {
	if user, ok := currentUser(c); ok {
		return h.Users, cartOwnerKey(user.ID)
	}

	token, err := c.Cookie(guestCartCookie)
	if err != nil || token == "" {
		token = uuid.New().String()
		c.SetCookie(guestCartCookie, token, 30*24*3600, "/", "", false, true)
	}
	return h.Guests, token
}

type cartLineResp struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	PriceCent int64  `json:"priceCent"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Stock     int    `json:"stock"`
	Quantity  int    `json:"quantity"`
	LineCent  int64  `json:"lineCent"`
	Line      string `json:"lineTotal"`
	Available bool   `json:"available"`
}

// Get returns cart lines resolved against live product data plus a subtotal
// preview. Prices here are informational; checkout re-reads them.
func (h *CartHandler) Get(c *gin.Context) {
	store, owner := h.resolve(c)

	lines, err := store.Items(owner)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cart")
		return
	}

	items := make([]cartLineResp, 0, len(lines))
	var subtotalCent int64
	for _, ln := range lines {
		var product models.Product
		err := h.DB.First(&product, ln.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			items = append(items, cartLineResp{
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				Available: false,
			})
			continue
		}
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cart")
			return
		}

		lineCent := product.PriceCent * int64(ln.Quantity)
		available := product.IsActive && product.Stock >= ln.Quantity
		if available {
			subtotalCent += lineCent
		}
		items = append(items, cartLineResp{
			ProductID: product.ID,
			Name:      product.Name,
			PriceCent: product.PriceCent,
			Price:     util.FormatCents(product.PriceCent),
			ImageURL:  product.ImageURL,
			Stock:     product.Stock,
			Quantity:  ln.Quantity,
			LineCent:  lineCent,
			Line:      util.FormatCents(lineCent),
			Available: available,
		})
	}

	util.Success(c, util.Response{
		"items":        items,
		"subtotalCent": subtotalCent,
		"subtotal":     util.FormatCents(subtotalCent),
	})
}

type addToCartReq struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// Add puts a product in the cart or bumps its quantity.
func (h *CartHandler) Add(c *gin.Context) {
	store, owner := h.resolve(c)

	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := util.ValidateQuantity(req.Quantity); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND is_active = ?", req.ProductID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query product")
		}
		return
	}

	// check the combined quantity against current stock
	have := 0
	lines, err := store.Items(owner)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cart")
		return
	}
	for _, ln := range lines {
		if ln.ProductID == req.ProductID {
			have = ln.Quantity
			break
		}
	}
	if have+req.Quantity > product.Stock {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"insufficient stock for "+strconv.Quote(product.Name)+": "+
				strconv.Itoa(product.Stock)+" available, "+
				strconv.Itoa(have+req.Quantity)+" requested")
		return
	}

	if err := store.Add(owner, req.ProductID, req.Quantity); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update cart")
		return
	}

	util.Success(c, util.Response{"message": "added to cart"})
}

type updateCartReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Update sets the quantity of an existing cart line.
func (h *CartHandler) Update(c *gin.Context) {
	store, owner := h.resolve(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	var req updateCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateQuantity(req.Quantity); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query product")
		}
		return
	}
	if req.Quantity > product.Stock {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"insufficient stock for "+strconv.Quote(product.Name)+": "+
				strconv.Itoa(product.Stock)+" available, "+
				strconv.Itoa(req.Quantity)+" requested")
		return
	}

	if err := store.Update(owner, uint(productID), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrNotInCart) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not in cart")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update cart")
		}
		return
	}

	util.Success(c, util.Response{"message": "cart updated"})
}

// Remove deletes one cart line.
func (h *CartHandler) Remove(c *gin.Context) {
	store, owner := h.resolve(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	if err := store.Remove(owner, uint(productID)); err != nil {
		if errors.Is(err, cart.ErrNotInCart) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not in cart")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update cart")
		}
		return
	}

	util.Success(c, util.Response{"message": "removed from cart"})
}

// Clear empties the whole cart.
func (h *CartHandler) Clear(c *gin.Context) {
	store, owner := h.resolve(c)

	if err := store.Clear(owner); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clear cart")
		return
	}

	util.Success(c, util.Response{"message": "cart cleared"})
}
