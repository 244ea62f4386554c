package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared/valueobject"
)

// AddressInput is the shipping address of a checkout request
type AddressInput struct {
	FullName     string `json:"fullName" binding:"required,min=1,max=200"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,min=5,max=20"`
	AddressLine1 string `json:"addressLine1" binding:"required,min=1,max=200"`
	AddressLine2 string `json:"addressLine2" binding:"max=200"`
	City         string `json:"city" binding:"required,min=1,max=200"`
	State        string `json:"state" binding:"required,min=1,max=200"`
	PostalCode   string `json:"postalCode" binding:"required,min=1,max=20"`
	Country      string `json:"country" binding:"required,min=1,max=200"`
}

// CardInput carries raw card fields; never persisted as-is
type CardInput struct {
	Number string `json:"number" binding:"required"`
	Holder string `json:"holder" binding:"required"`
	Expiry string `json:"expiry" binding:"required"`
	CVV    string `json:"cvv" binding:"required"`
}

// PlaceOrderRequest represents a checkout request
type PlaceOrderRequest struct {
	Address       AddressInput `json:"address" binding:"required"`
	PaymentMethod string       `json:"paymentMethod" binding:"required,oneof=card upi netbanking cod"`
	CardDetails   *CardInput   `json:"cardDetails"`
}

// UpdateOrderStatusRequest represents a lifecycle transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is a line item in an order response
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Address       valueobject.ShippingAddress `json:"address"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	CardLastFour  string              `json:"card_last_four,omitempty"`
	CardNetwork   string              `json:"card_network,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToOrderResponse maps an order aggregate to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		}
	}

	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		Total:         o.Total,
		Address:       o.Address,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		CardLastFour:  o.Card.LastFour,
		CardNetwork:   string(o.Card.Network),
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
