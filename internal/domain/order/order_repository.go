package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID loads an order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindAll returns all orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindRecent returns the most recently placed orders
	FindRecent(ctx context.Context, limit int) ([]Order, error)

	// Create inserts a new order with its line items
	Create(ctx context.Context, o *Order) error

	// Save updates an order's mutable fields (status, timestamps, bookkeeping)
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumTotals sums the totals of all orders excluding cancelled ones
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}
