package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/cart"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// CartService handles shopping cart operations
// Carts hold product references only; prices are resolved against the
// catalog on every read and nothing is reserved until checkout
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the user's cart resolved against current catalog prices
// A user without a cart gets an empty cart, not an error
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptyCartResponse(), nil
		}
		return nil, err
	}

	return s.resolve(ctx, userCart)
}

// AddItem adds a product to the cart, merging quantities for repeat adds
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	userCart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	return s.resolve(ctx, userCart)
}

// UpdateItem sets the quantity of a line item
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.resolve(ctx, userCart)
}

// RemoveItem removes a line item from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.resolve(ctx, userCart)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.cartRepo.ClearItems(ctx, userCart.ID)
}

// resolve joins the cart's line items with current catalog data
// Lines whose product has been removed from the catalog are skipped
func (s *CartService) resolve(ctx context.Context, userCart *cart.Cart) (*CartResponse, error) {
	if userCart.IsEmpty() {
		return emptyCartResponse(), nil
	}

	ids := make([]uuid.UUID, 0, len(userCart.Items))
	for i := range userCart.Items {
		ids = append(ids, userCart.Items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	resp := emptyCartResponse()
	for i := range userCart.Items {
		item := &userCart.Items[i]
		product, ok := byID[item.ProductID]
		if !ok {
			s.logger.Warn("Cart references missing product",
				zap.String("cart_id", userCart.ID.String()),
				zap.String("product_id", item.ProductID.String()))
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
			MainImage:   product.MainImage,
			Stock:       product.Stock,
		})
		resp.TotalQuantity += item.Quantity
		resp.Total = resp.Total.Add(lineTotal)
	}

	return resp, nil
}

func emptyCartResponse() *CartResponse {
	return &CartResponse{
		Items: make([]CartItemResponse, 0),
		Total: decimal.Zero,
	}
}
