package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
)

// WishlistService handles the per-user product wishlist
type WishlistService struct {
	wishlistRepo identity.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlistRepo identity.WishlistRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// List returns the user's wishlist resolved against the catalog
// Entries whose product has since been removed are skipped
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []WishlistItemResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	responses := make([]WishlistItemResponse, 0, len(items))
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			continue
		}
		responses = append(responses, WishlistItemResponse{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price.StringFixed(2),
			Stock:     product.Stock,
			MainImage: product.MainImage,
			AddedAt:   items[i].CreatedAt,
		})
	}
	return responses, nil
}

// Add puts a product on the wishlist; adding it twice is a no-op
func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	item, err := identity.NewWishlistItem(userID, productID)
	if err != nil {
		return err
	}
	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		return err
	}

	s.logger.Debug("Wishlist item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))
	return nil
}

// Remove takes a product off the wishlist
// Returns ErrNotFound when the product was not on it
func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.wishlistRepo.Remove(ctx, userID, productID)
}
