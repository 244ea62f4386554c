package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
// Forward-only: no backward transitions, no skipping states
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// OrderItem is an immutable line item snapshot taken at placement time
// Name and unit price are copied from the product so later catalog edits
// never change what the customer agreed to pay
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null;check:quantity >= 1"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item snapshot
func NewOrderItem(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		LineTotal:   unitPrice.MultiplyByInt(int64(quantity)).Amount(),
	}, nil
}

// Order is an immutable snapshot of a completed checkout
// Only Status, the status timestamps and StockRestored change after creation
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Items         []OrderItem                   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total         decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	Address       valueobject.ShippingAddress   `gorm:"type:jsonb"`
	PaymentMethod PaymentMethod                 `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus                 `gorm:"type:varchar(20);not null;default:'pending'"`
	Card          CardInfo                      `gorm:"embedded;embeddedPrefix:card_"`
	Status        OrderStatus                   `gorm:"type:varchar(20);not null;default:'pending';index"`
	StockRestored bool                          `gorm:"not null;default:false"`
	ConfirmedAt   *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in pending state
// The total is computed here from the line item snapshots and never
// recomputed afterwards
func NewOrder(userID uuid.UUID, items []OrderItem, address valueobject.ShippingAddress, method PaymentMethod, card CardInfo) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	if method == PaymentMethodCard && card.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_CARD", "Card details are required for card payments")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Total:             decimal.Zero,
		Address:           address,
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusPending,
		Card:              card,
		Status:            OrderStatusPending,
	}

	o.Items = make([]OrderItem, len(items))
	for i, item := range items {
		item.OrderID = o.ID
		o.Items[i] = item
		o.Total = o.Total.Add(item.LineTotal)
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// TransitionTo moves the order to the target lifecycle state
// Invalid transitions fail with INVALID_TRANSITION; inventory effects of a
// cancellation are the caller's responsibility, coordinated via
// NeedsStockRestore/MarkStockRestored inside the same transaction
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}

	now := time.Now()
	o.Status = target
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o))

	return nil
}

// NeedsStockRestore reports whether cancellation still owes the catalog its
// stock back
func (o *Order) NeedsStockRestore() bool {
	return o.Status == OrderStatusCancelled && !o.StockRestored
}

// MarkStockRestored records that cancelled quantities were returned to stock
// Restoration happens at most once per order
func (o *Order) MarkStockRestored() {
	o.StockRestored = true
	o.UpdatedAt = time.Now()
}

// TotalMoney returns the stored total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.Total)
}
