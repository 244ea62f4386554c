package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorageService, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

// List returns products matching the public catalog filters, newest first
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 || query.PageSize > 100 {
		query.PageSize = 20
	}

	repoQuery := catalog.ProductQuery{
		Search:     query.Search,
		Categories: query.Categories,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.MinPrice != nil {
		min := decimal.NewFromFloat(*query.MinPrice)
		repoQuery.MinPrice = &min
	}
	if query.MaxPrice != nil {
		max := decimal.NewFromFloat(*query.MaxPrice)
		repoQuery.MaxPrice = &max
	}

	products, total, err := s.productRepo.Search(ctx, repoQuery)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, price, req.Stock)
	if err != nil {
		return nil, err
	}
	if len(req.Categories) > 0 {
		product.SetCategories(req.Categories)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update edits a product's details
// Stock changes here are plain admin corrections; the order flow never uses
// this path
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Categories != nil {
		product.SetCategories(req.Categories)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and its stored images
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	// best effort: the catalog row is already gone
	for _, key := range append([]string{product.MainImage}, product.GalleryImages...) {
		if key == "" {
			continue
		}
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("product_id", id.String()),
				zap.String("key", key),
				zap.Error(err))
		}
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// UploadMainImage stores the primary product image
func (s *ProductService) UploadMainImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := productImageKey(id, filename)
	if err := s.storage.Upload(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	old := product.MainImage
	product.SetMainImage(key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if old != "" && old != key {
		if err := s.storage.DeleteObject(ctx, old); err != nil {
			s.logger.Warn("Failed to delete replaced product image",
				zap.String("key", old), zap.Error(err))
		}
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AddGalleryImage stores an additional product image
func (s *ProductService) AddGalleryImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := productImageKey(id, filename)
	if err := s.storage.Upload(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	if err := product.AddGalleryImage(key); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// RemoveGalleryImage removes a gallery image from the product and storage
func (s *ProductService) RemoveGalleryImage(ctx context.Context, id uuid.UUID, key string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.RemoveGalleryImage(key); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete gallery image",
			zap.String("key", key), zap.Error(err))
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

func productImageKey(productID uuid.UUID, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("products/%s/%d%s", productID, time.Now().UnixNano(), ext)
}
