package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
// All operations are scoped to the owning user
type CartRepository interface {
	// FindByUser loads a user's cart with its items
	// Returns ErrNotFound when the user has no cart yet
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// FindOrCreateByUser loads a user's cart, creating an empty one first
	// if it does not exist
	FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and its items, removing deleted line items
	Save(ctx context.Context, cart *Cart) error

	// ClearItems deletes all line items of a cart, keeping the cart row
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
