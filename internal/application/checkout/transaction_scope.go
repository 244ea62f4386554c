package checkout

import (
	"context"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/cart"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories touched
// by checkout. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically.
//
// Order placement relies on this for its core guarantee: stock decrement,
// order insert and cart clear either all happen or none do.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the checkout repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Orders returns the order repository scoped to the current transaction
	Orders() order.OrderRepository
	// Carts returns the cart repository scoped to the current transaction
	Carts() cart.CartRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
	cartRepo    cart.CartRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	orderRepo order.OrderRepository,
	cartRepo cart.CartRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.OrderRepository {
	return s.orderRepo
}

// Carts returns the cart repository
func (s *NoOpTransactionScope) Carts() cart.CartRepository {
	return s.cartRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
