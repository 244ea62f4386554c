package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/cart"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// ==================== Mock repositories ====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query catalog.ProductQuery) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

// ==================== Fixtures ====================

type serviceFixture struct {
	products *MockProductRepository
	orders   *MockOrderRepository
	carts    *MockCartRepository
	service  *OrderService
}

func newServiceFixture() *serviceFixture {
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	scope := NewNoOpTransactionScope(products, orders, carts)
	return &serviceFixture{
		products: products,
		orders:   orders,
		carts:    carts,
		service:  NewOrderService(scope, zap.NewNop()),
	}
}

func validPlaceOrderRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Address: AddressInput{
			FullName:     "Asha Verma",
			Email:        "asha@example.com",
			Phone:        "+91-9876543210",
			AddressLine1: "42 Rose Garden Lane",
			City:         "Pune",
			State:        "Maharashtra",
			PostalCode:   "411001",
			Country:      "India",
		},
		PaymentMethod: "cod",
	}
}

func mustProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", valueobject.NewMoneyINRFromFloat(price), stock)
	require.NoError(t, err)
	return p
}

func cartWith(userID uuid.UUID, lines map[uuid.UUID]int) *cart.Cart {
	c := cart.NewCart(userID)
	for productID, qty := range lines {
		_ = c.AddItem(productID, qty)
	}
	return c
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// ==================== PlaceOrder ====================

func TestPlaceOrderValidation(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()

	t.Run("incomplete address", func(t *testing.T) {
		req := validPlaceOrderRequest()
		req.Address.City = ""
		_, err := f.service.PlaceOrder(context.Background(), userID, req)
		assert.Equal(t, "INVALID_ADDRESS", domainCode(t, err))
	})

	t.Run("unsupported payment method", func(t *testing.T) {
		req := validPlaceOrderRequest()
		req.PaymentMethod = "cheque"
		_, err := f.service.PlaceOrder(context.Background(), userID, req)
		assert.Equal(t, "INVALID_PAYMENT_METHOD", domainCode(t, err))
	})

	t.Run("card method without card details", func(t *testing.T) {
		req := validPlaceOrderRequest()
		req.PaymentMethod = "card"
		_, err := f.service.PlaceOrder(context.Background(), userID, req)
		assert.Equal(t, "INVALID_CARD", domainCode(t, err))
	})

	// validation failures never reach the repositories
	f.carts.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	t.Run("no cart yet", func(t *testing.T) {
		f := newServiceFixture()
		userID := uuid.New()
		f.carts.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
		assert.Equal(t, "EMPTY_CART", domainCode(t, err))
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cart with zero items", func(t *testing.T) {
		f := newServiceFixture()
		userID := uuid.New()
		f.carts.On("FindByUser", mock.Anything, userID).Return(cart.NewCart(userID), nil)

		_, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
		assert.Equal(t, "EMPTY_CART", domainCode(t, err))
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()

	// 2 x 150 + 1 x 300 = 600
	monstera := mustProduct(t, "Monstera Deliciosa", 150, 5)
	snake := mustProduct(t, "Snake Plant", 300, 2)

	userCart := cartWith(userID, map[uuid.UUID]int{monstera.ID: 2, snake.ID: 1})

	f.carts.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*monstera, *snake}, nil)
	f.products.On("DecrementStock", mock.Anything, monstera.ID, 2).Return(nil)
	f.products.On("DecrementStock", mock.Anything, snake.ID, 1).Return(nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.carts.On("ClearItems", mock.Anything, userCart.ID).Return(nil)

	resp, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, "cod", resp.PaymentMethod)
	assert.Len(t, resp.Items, 2)

	f.orders.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*order.Order"))
	f.carts.AssertCalled(t, "ClearItems", mock.Anything, userCart.ID)
}

func TestPlaceOrderCardSnapshot(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	fern := mustProduct(t, "Boston Fern", 250, 3)
	userCart := cartWith(userID, map[uuid.UUID]int{fern.ID: 1})

	f.carts.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*fern}, nil)
	f.products.On("DecrementStock", mock.Anything, fern.ID, 1).Return(nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("ClearItems", mock.Anything, userCart.ID).Return(nil)

	req := validPlaceOrderRequest()
	req.PaymentMethod = "card"
	req.CardDetails = &CardInput{Number: "5555444433331111", Holder: "Asha Verma", Expiry: "11/28", CVV: "456"}

	resp, err := f.service.PlaceOrder(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, "1111", resp.CardLastFour)
	assert.Equal(t, "Mastercard", resp.CardNetwork)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()

	// productA qty 3 of stock 5 is fine; productB has no stock
	productA := mustProduct(t, "Areca Palm", 100, 5)
	productB := mustProduct(t, "Peace Lily", 200, 0)

	userCart := cart.NewCart(userID)
	require.NoError(t, userCart.AddItem(productA.ID, 3))
	require.NoError(t, userCart.AddItem(productB.ID, 1))

	f.carts.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*productA, *productB}, nil)
	f.products.On("DecrementStock", mock.Anything, productA.ID, 3).Return(nil)
	f.products.On("DecrementStock", mock.Anything, productB.ID, 1).Return(shared.ErrInsufficientStock)

	_, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
	require.Error(t, err)

	assert.Equal(t, "INSUFFICIENT_STOCK", domainCode(t, err))
	assert.Contains(t, err.Error(), "Peace Lily")

	// the aborted transaction never reaches the order ledger or the cart
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.carts.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
}

func TestPlaceOrderVanishedProduct(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	ghost := uuid.New()

	userCart := cartWith(userID, map[uuid.UUID]int{ghost: 1})

	f.carts.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)

	_, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestPlaceOrderStorageFailureIsTransient(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	fern := mustProduct(t, "Boston Fern", 250, 3)
	userCart := cartWith(userID, map[uuid.UUID]int{fern.ID: 2})

	f.carts.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*fern}, nil)
	f.products.On("DecrementStock", mock.Anything, fern.ID, 2).Return(nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("driver: connection reset"))

	_, err := f.service.PlaceOrder(context.Background(), userID, validPlaceOrderRequest())
	assert.ErrorIs(t, err, shared.ErrTransient)
}

// ==================== UpdateStatus ====================

func placedOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem(uuid.New(), "Monstera Deliciosa", valueobject.NewMoneyINRFromFloat(150), 2)
	require.NoError(t, err)
	addr := valueobject.MustNewShippingAddress(valueobject.ShippingAddressParams{
		FullName:     "Asha Verma",
		Email:        "asha@example.com",
		Phone:        "+91-9876543210",
		AddressLine1: "42 Rose Garden Lane",
		City:         "Pune",
		State:        "Maharashtra",
		PostalCode:   "411001",
		Country:      "India",
	})
	o, err := order.NewOrder(userID, []order.OrderItem{*item}, addr, order.PaymentMethodUPI, order.CardInfo{})
	require.NoError(t, err)
	return o
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.UpdateStatus(context.Background(), false, uuid.New(), "confirmed")
	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	f := newServiceFixture()
	orderID := uuid.New()
	f.orders.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

	_, err := f.service.UpdateStatus(context.Background(), true, orderID, "confirmed")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newServiceFixture()
	o := placedOrder(t, uuid.New())
	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.UpdateStatus(context.Background(), true, o.ID, "delivered")
	assert.Equal(t, "INVALID_TRANSITION", domainCode(t, err))
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatusConfirm(t *testing.T) {
	f := newServiceFixture()
	o := placedOrder(t, uuid.New())
	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.orders.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.UpdateStatus(context.Background(), true, o.ID, "confirmed")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	// no inventory effect outside cancellation
	f.products.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusCancelRestoresStock(t *testing.T) {
	f := newServiceFixture()
	o := placedOrder(t, uuid.New())
	require.NoError(t, o.TransitionTo(order.OrderStatusConfirmed))
	require.NoError(t, o.TransitionTo(order.OrderStatusShipped))

	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.products.On("RestoreStock", mock.Anything, o.Items[0].ProductID, 2).Return(nil)
	f.orders.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.UpdateStatus(context.Background(), true, o.ID, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.True(t, o.StockRestored)
	f.products.AssertCalled(t, "RestoreStock", mock.Anything, o.Items[0].ProductID, 2)
}

func TestUpdateStatusCancelledOrderIsTerminal(t *testing.T) {
	f := newServiceFixture()
	o := placedOrder(t, uuid.New())
	require.NoError(t, o.TransitionTo(order.OrderStatusCancelled))
	o.MarkStockRestored()

	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.UpdateStatus(context.Background(), true, o.ID, "confirmed")
	assert.Equal(t, "INVALID_TRANSITION", domainCode(t, err))
	// a second cancellation is also rejected, so stock cannot restore twice
	_, err = f.service.UpdateStatus(context.Background(), true, o.ID, "cancelled")
	assert.Equal(t, "INVALID_TRANSITION", domainCode(t, err))
	f.products.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

// ==================== Queries ====================

func TestListForUser(t *testing.T) {
	f := newServiceFixture()
	userID := uuid.New()
	o := placedOrder(t, userID)
	f.orders.On("FindByUser", mock.Anything, userID).Return([]order.Order{*o}, nil)

	resp, err := f.service.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, o.ID, resp[0].ID)
}

func TestGetByIDOwnership(t *testing.T) {
	f := newServiceFixture()
	ownerID := uuid.New()
	o := placedOrder(t, ownerID)
	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	t.Run("owner can read", func(t *testing.T) {
		resp, err := f.service.GetByID(context.Background(), ownerID, false, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := f.service.GetByID(context.Background(), uuid.New(), true, o.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := f.service.GetByID(context.Background(), uuid.New(), false, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestListAll(t *testing.T) {
	f := newServiceFixture()
	o := placedOrder(t, uuid.New())

	f.orders.On("FindAll", mock.Anything, mock.Anything).Return([]order.Order{*o}, nil)
	f.orders.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	resp, total, err := f.service.ListAll(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, resp, 1)
}
