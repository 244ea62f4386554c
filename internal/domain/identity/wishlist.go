package identity

import (
	"github.com/google/uuid"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// WishlistItem marks a product a user wants to remember
// Backed by a join table; the (user, product) pair is unique so adds are
// idempotent at the storage level
type WishlistItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:2"`
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlistItem creates a wishlist entry
func NewWishlistItem(userID, productID uuid.UUID) (*WishlistItem, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	return &WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
	}, nil
}
