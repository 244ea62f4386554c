package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// ProductQuery captures the public catalog listing filters
type ProductQuery struct {
	Search     string
	Categories []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	PageSize   int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Search finds products matching the catalog query, newest first
	Search(ctx context.Context, query ProductQuery) ([]Product, int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// DecrementStock atomically decrements stock by quantity, guarded by
	// stock >= quantity. Returns ErrInsufficientStock when the guard fails
	// and ErrNotFound when the product does not exist. This is the only
	// write path for stock during order placement.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// RestoreStock atomically adds quantity back onto stock
	// Used when an order is cancelled
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error
}
