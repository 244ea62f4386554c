package order

import (
	"strings"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

// PaymentMethod identifies how the customer intends to pay
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodCOD        PaymentMethod = "cod"
)

// IsValid reports whether the payment method is one of the supported values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodCOD:
		return true
	}
	return false
}

// PaymentStatus tracks payment capture state
// Capture is not integrated; every order stays pending
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
)

// CardNetwork is the derived card scheme label
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "Visa"
	CardNetworkMastercard CardNetwork = "Mastercard"
	CardNetworkAmex       CardNetwork = "American Express"
	CardNetworkDiscover   CardNetwork = "Discover"
	CardNetworkUnknown    CardNetwork = "Unknown"
)

// CardDetails carries the raw card input during checkout
// The full number, holder, expiry and CVV are validated and then discarded;
// only the last four digits and the derived network label are persisted
type CardDetails struct {
	Number string
	Holder string
	Expiry string
	CVV    string
}

// CardInfo is the persisted, non-sensitive card snapshot
type CardInfo struct {
	LastFour string      `gorm:"type:varchar(4)"`
	Network  CardNetwork `gorm:"type:varchar(20)"`
}

// IsEmpty reports whether no card snapshot is present
func (c CardInfo) IsEmpty() bool {
	return c.LastFour == "" && c.Network == ""
}

// NewCardInfo validates card details and derives the stored snapshot
func NewCardInfo(details CardDetails) (CardInfo, error) {
	number := strings.ReplaceAll(strings.TrimSpace(details.Number), " ", "")
	if number == "" || strings.TrimSpace(details.Holder) == "" ||
		strings.TrimSpace(details.Expiry) == "" || strings.TrimSpace(details.CVV) == "" {
		return CardInfo{}, shared.NewDomainError("INVALID_CARD", "All card fields are required for card payments")
	}

	if len(number) < 12 || len(number) > 19 {
		return CardInfo{}, shared.NewDomainError("INVALID_CARD", "Card number length is invalid")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return CardInfo{}, shared.NewDomainError("INVALID_CARD", "Card number must contain only digits")
		}
	}

	return CardInfo{
		LastFour: number[len(number)-4:],
		Network:  DeriveCardNetwork(number),
	}, nil
}

// DeriveCardNetwork labels the card scheme from the leading digit
func DeriveCardNetwork(number string) CardNetwork {
	if number == "" {
		return CardNetworkUnknown
	}
	switch number[0] {
	case '4':
		return CardNetworkVisa
	case '5', '2':
		return CardNetworkMastercard
	case '3':
		return CardNetworkAmex
	case '6':
		return CardNetworkDiscover
	}
	return CardNetworkUnknown
}
