package admin

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcheckout "github.com/falkeetsingh/Mini-Plant-Store/internal/application/checkout"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

const recentOrderCount = 5

// DashboardResponse is the admin back-office summary
// GrossSales excludes cancelled orders
type DashboardResponse struct {
	UserCount    int64                       `json:"user_count"`
	ProductCount int64                       `json:"product_count"`
	OrderCount   int64                       `json:"order_count"`
	GrossSales   decimal.Decimal             `json:"gross_sales"`
	RecentOrders []appcheckout.OrderResponse `json:"recent_orders"`
}

// DashboardService aggregates store-wide figures for the admin back office
type DashboardService struct {
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.OrderRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Summary builds the dashboard figures
func (s *DashboardService) Summary(ctx context.Context) (*DashboardResponse, error) {
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	grossSales, err := s.orderRepo.SumTotals(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.orderRepo.FindRecent(ctx, recentOrderCount)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		UserCount:    userCount,
		ProductCount: productCount,
		OrderCount:   orderCount,
		GrossSales:   grossSales,
		RecentOrders: appcheckout.ToOrderResponses(recent),
	}, nil
}
