package admin

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

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

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
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
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
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func dashboardFixture() (*DashboardService, *MockUserRepository, *MockProductRepository, *MockOrderRepository) {
	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	svc := NewDashboardService(userRepo, productRepo, orderRepo, zap.NewNop())
	return svc, userRepo, productRepo, orderRepo
}

func orderFixture(t *testing.T) order.Order {
	t.Helper()

	address, err := valueobject.NewShippingAddress(valueobject.ShippingAddressParams{
		FullName:     "Asha Verma",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Pune",
		State:        "Maharashtra",
		PostalCode:   "411001",
		Country:      "India",
	})
	require.NoError(t, err)

	item, err := order.NewOrderItem(uuid.New(), "Peace Lily", valueobject.NewMoneyINRFromFloat(300), 2)
	require.NoError(t, err)

	placed, err := order.NewOrder(uuid.New(), []order.OrderItem{*item}, address, order.PaymentMethodCOD, order.CardInfo{})
	require.NoError(t, err)
	return *placed
}

func TestDashboardService_Summary(t *testing.T) {
	t.Run("aggregates store-wide figures", func(t *testing.T) {
		svc, userRepo, productRepo, orderRepo := dashboardFixture()

		userRepo.On("Count", mock.Anything).Return(int64(42), nil)
		productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(17), nil)
		orderRepo.On("Count", mock.Anything, mock.Anything).Return(int64(9), nil)
		orderRepo.On("SumTotals", mock.Anything).Return(decimal.NewFromInt(5400), nil)
		orderRepo.On("FindRecent", mock.Anything, 5).Return([]order.Order{orderFixture(t)}, nil)

		resp, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.UserCount)
		assert.Equal(t, int64(17), resp.ProductCount)
		assert.Equal(t, int64(9), resp.OrderCount)
		assert.True(t, resp.GrossSales.Equal(decimal.NewFromInt(5400)))
		require.Len(t, resp.RecentOrders, 1)
		assert.Equal(t, "pending", string(resp.RecentOrders[0].Status))
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		svc, userRepo, _, _ := dashboardFixture()

		userRepo.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

		_, err := svc.Summary(context.Background())
		assert.Error(t, err)
	})
}
