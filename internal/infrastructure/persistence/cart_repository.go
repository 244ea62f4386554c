package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/cart"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser loads a user's cart with its items
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindOrCreateByUser loads a user's cart, creating an empty one first if needed
func (r *GormCartRepository) FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := r.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c = cart.NewCart(userID)
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// another request may have created it concurrently; the user_id
		// unique index makes the race harmless
		existing, findErr := r.FindByUser(ctx, userID)
		if findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return c, nil
}

// Save persists the cart and its items, removing deleted line items
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(c.Items))
		for i := range c.Items {
			keep = append(keep, c.Items[i].ID)
		}

		cleanup := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			cleanup = cleanup.Where("id NOT IN ?", keep)
		}
		if err := cleanup.Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
	})
}

// ClearItems deletes all line items of a cart, keeping the cart row
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cart.CartItem{}).Error
}
