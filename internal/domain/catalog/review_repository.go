package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct finds all reviews for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)

	// FindByProductAndUser finds the review a user left on a product
	// Returns ErrNotFound when the user has not reviewed the product
	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*Review, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id uuid.UUID) error
}
