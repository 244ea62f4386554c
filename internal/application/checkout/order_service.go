package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// OrderService orchestrates order placement and lifecycle transitions
//
// Placement runs entirely inside a transaction scope so that the three
// effects of a checkout (stock decrement, order insert, cart clear) commit
// together or not at all. The per-product stock check uses the repository's
// conditional decrement, so concurrent checkouts can never oversell.
type OrderService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, logger *zap.Logger) *OrderService {
	return &OrderService{
		scope:  scope,
		logger: logger,
	}
}

// PlaceOrder converts the caller's cart into an order
//
// Validation failures (address, payment method, card fields) and business
// failures (empty cart, insufficient stock) are detected before commit and
// leave no mutation behind. Storage failures roll the transaction back and
// surface as a retryable transient error.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	address, err := valueobject.NewShippingAddress(valueobject.ShippingAddressParams{
		FullName:     req.Address.FullName,
		Email:        req.Address.Email,
		Phone:        req.Address.Phone,
		AddressLine1: req.Address.AddressLine1,
		AddressLine2: req.Address.AddressLine2,
		City:         req.Address.City,
		State:        req.Address.State,
		PostalCode:   req.Address.PostalCode,
		Country:      req.Address.Country,
	})
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	method := order.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method: "+req.PaymentMethod)
	}

	var card order.CardInfo
	if method == order.PaymentMethodCard {
		if req.CardDetails == nil {
			return nil, shared.NewDomainError("INVALID_CARD", "Card details are required for card payments")
		}
		card, err = order.NewCardInfo(order.CardDetails{
			Number: req.CardDetails.Number,
			Holder: req.CardDetails.Holder,
			Expiry: req.CardDetails.Expiry,
			CVV:    req.CardDetails.CVV,
		})
		if err != nil {
			return nil, err
		}
	}

	var placed *order.Order
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		userCart, err := repos.Carts().FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrEmptyCart
			}
			return err
		}
		if userCart.IsEmpty() {
			return shared.ErrEmptyCart
		}

		productIDs := make([]uuid.UUID, len(userCart.Items))
		for i, item := range userCart.Items {
			productIDs[i] = item.ProductID
		}
		products, err := repos.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		// Snapshot line items with the prices read in this transaction and
		// take the stock in the same pass. The conditional decrement is the
		// authoritative availability check; a failure aborts the whole
		// transaction so earlier decrements are rolled back.
		items := make([]order.OrderItem, 0, len(userCart.Items))
		for _, line := range userCart.Items {
			product, ok := byID[line.ProductID]
			if !ok {
				return shared.NewDomainError("NOT_FOUND", "Product in cart no longer exists")
			}

			item, err := order.NewOrderItem(product.ID, product.Name, product.UnitPrice(), line.Quantity)
			if err != nil {
				return err
			}

			if err := repos.Products().DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("Insufficient stock for %s", product.Name))
				}
				return err
			}

			items = append(items, *item)
		}

		newOrder, err := order.NewOrder(userID, items, address, method, card)
		if err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, newOrder); err != nil {
			return err
		}
		if err := repos.Carts().ClearItems(ctx, userCart.ID); err != nil {
			return err
		}

		placed = newOrder
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "place order failed", zap.String("user_id", userID.String()))
	}

	s.logger.Info("Order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", placed.Total.String()),
		zap.Int("items", len(placed.Items)))

	resp := ToOrderResponse(placed)
	return &resp, nil
}

// ListForUser returns the caller's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	var orders []order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		orders, err = repos.Orders().FindByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, s.classify(err, "list orders failed", zap.String("user_id", userID.String()))
	}
	return ToOrderResponses(orders), nil
}

// ListAll returns all orders, newest first. Admin only; the capability check
// happens at the transport layer
func (s *OrderService) ListAll(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var orders []order.Order
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		if orders, err = repos.Orders().FindAll(ctx, filter); err != nil {
			return err
		}
		total, err = repos.Orders().Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, s.classify(err, "list all orders failed")
	}
	return ToOrderResponses(orders), total, nil
}

// GetByID returns one order, visible to its owner or an admin
func (s *OrderService) GetByID(ctx context.Context, actorID uuid.UUID, actorIsAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	var found *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		found, err = repos.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, s.classify(err, "get order failed", zap.String("order_id", orderID.String()))
	}

	if !actorIsAdmin && found.UserID != actorID {
		return nil, shared.ErrForbidden
	}

	resp := ToOrderResponse(found)
	return &resp, nil
}

// UpdateStatus drives the order lifecycle machine
//
// Only admin-capable actors may transition orders. Moving into cancelled
// restores each line item's stock atomically with the status write; the
// StockRestored flag guarantees the restoration happens at most once.
func (s *OrderService) UpdateStatus(ctx context.Context, actorIsAdmin bool, orderID uuid.UUID, status string) (*OrderResponse, error) {
	if !actorIsAdmin {
		return nil, shared.ErrForbidden
	}

	target := order.OrderStatus(status)

	var updated *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := o.TransitionTo(target); err != nil {
			return err
		}

		if o.NeedsStockRestore() {
			for _, item := range o.Items {
				if err := repos.Products().RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			o.MarkStockRestored()
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "order status update failed",
			zap.String("order_id", orderID.String()),
			zap.String("target_status", status))
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", status))

	resp := ToOrderResponse(updated)
	return &resp, nil
}

// classify passes domain errors through untouched and converts anything else
// (driver errors, timeouts, serialization conflicts) into a retryable
// transient error after logging the cause
func (s *OrderService) classify(err error, msg string, fields ...zap.Field) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	s.logger.Error(msg, append(fields, zap.Error(err))...)
	return shared.ErrTransient
}
