package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// Cart holds a user's pre-checkout line items
// Exactly one cart exists per user; it is created lazily on first add and
// cleared, not deleted, after a successful checkout
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a single product/quantity line in a cart
// The (cart, product) pair is unique, so add operations merge quantities
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:2"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}
}

// AddItem adds a product to the cart, merging the quantity when the product
// is already present
func (c *Cart) AddItem(productID uuid.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	c.touch()

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line item
// Returns ErrNotFound when the product is not in the cart
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Product not in cart")
}

// RemoveItem removes a line item from the cart
// Returns ErrNotFound when the product is not in the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Product not in cart")
}

// Clear removes all line items but keeps the cart itself
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.touch()
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quantity returns the quantity for a product, zero when absent
func (c *Cart) Quantity(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// TotalQuantity returns the sum of all line item quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return nil
}
