package catalog

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// Product represents a plant listed in the storefront catalog
// It is the aggregate root for catalog operations
//
// Stock is the only concurrency-sensitive field: order flows mutate it solely
// through the repository's atomic decrement/restore operations, never through
// a plain save of the aggregate. SetStock exists for admin corrections only.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;index"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock         int             `gorm:"not null;default:0;check:stock >= 0"`
	Categories    pq.StringArray  `gorm:"type:text[]"`
	MainImage     string          `gorm:"type:varchar(500)"`
	GalleryImages pq.StringArray  `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price valueobject.Money, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price.Amount(),
		Stock:             stock,
		Categories:        pq.StringArray{},
		GalleryImages:     pq.StringArray{},
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice sets the selling price
// Prices of already-placed orders are unaffected: order totals are snapshots
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the absolute stock level (admin correction path)
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategories replaces the category labels
func (p *Product) SetCategories(categories []string) {
	cleaned := make(pq.StringArray, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(strings.ToLower(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cleaned = append(cleaned, c)
	}

	p.Categories = cleaned
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// HasCategory reports whether the product carries the given category label
func (p *Product) HasCategory(category string) bool {
	category = strings.TrimSpace(strings.ToLower(category))
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SetMainImage sets the primary product image key
func (p *Product) SetMainImage(key string) {
	p.MainImage = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AddGalleryImage appends an image key to the gallery
func (p *Product) AddGalleryImage(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image key cannot be empty")
	}
	for _, existing := range p.GalleryImages {
		if existing == key {
			return shared.NewDomainError("ALREADY_EXISTS", "Image already in gallery")
		}
	}

	p.GalleryImages = append(p.GalleryImages, key)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveGalleryImage removes an image key from the gallery
func (p *Product) RemoveGalleryImage(key string) error {
	for i, existing := range p.GalleryImages {
		if existing == key {
			p.GalleryImages = append(p.GalleryImages[:i], p.GalleryImages[i+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Image not found in gallery")
}

// UnitPrice returns the current price as Money
func (p *Product) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyINR(p.Price)
}

// HasStock reports whether the requested quantity is currently available
// This is a convenience read; the authoritative check is the repository's
// conditional decrement
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
