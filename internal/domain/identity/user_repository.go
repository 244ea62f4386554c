package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Count counts all users
	Count(ctx context.Context) (int64, error)
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByUser returns all wishlist entries for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)

	// Add inserts a wishlist entry; adding an already-wished product is a no-op
	Add(ctx context.Context, item *WishlistItem) error

	// Remove deletes a wishlist entry
	// Returns ErrNotFound when the product was not wished
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}
