package cart

import (
	"errors"
	"fmt"

	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"gorm.io/gorm"
)

// ErrNotInCart is returned by Update/Remove when the product has no line.
var ErrNotInCart = errors.New("product not in cart")

// DBStore persists cart lines in the cart_items table.
type DBStore struct {
	DB *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{DB: db}
}

// WithTx returns a view of the store bound to the given transaction.
func (s *DBStore) WithTx(tx *gorm.DB) Store {
	return &DBStore{DB: tx}
}

func (s *DBStore) Items(owner string) ([]Line, error) {
	var items []models.CartItem
	if err := s.DB.Where("owner_id = ?", owner).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines, nil
}

func (s *DBStore) Add(owner string, productID uint, quantity int) error {
	var item models.CartItem
	err := s.DB.Where("owner_id = ? AND product_id = ?", owner, productID).
		First(&item).Error
	switch {
	case err == nil:
		return s.DB.Model(&item).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			OwnerID:   owner,
			ProductID: productID,
			Quantity:  quantity,
		}
		return s.DB.Create(&item).Error
	default:
		return fmt.Errorf("load cart line: %w", err)
	}
}

func (s *DBStore) Update(owner string, productID uint, quantity int) error {
	res := s.DB.Model(&models.CartItem{}).
		Where("owner_id = ? AND product_id = ?", owner, productID).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("update cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

func (s *DBStore) Remove(owner string, productID uint) error {
	res := s.DB.Where("owner_id = ? AND product_id = ?", owner, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("remove cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

func (s *DBStore) Clear(owner string) error {
	return s.DB.Where("owner_id = ?", owner).Delete(&models.CartItem{}).Error
}
