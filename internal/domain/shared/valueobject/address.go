package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is a value object representing an order delivery address
// It is immutable - all operations return new ShippingAddress instances
type ShippingAddress struct {
	fullName     string
	email        string
	phone        string
	addressLine1 string
	addressLine2 string
	city         string
	state        string
	postalCode   string
	country      string
}

// ShippingAddressParams carries the raw fields for constructing an address
type ShippingAddressParams struct {
	FullName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// NewShippingAddress creates a new ShippingAddress
// All fields except AddressLine2 are required
func NewShippingAddress(p ShippingAddressParams) (ShippingAddress, error) {
	addr := ShippingAddress{
		fullName:     strings.TrimSpace(p.FullName),
		email:        strings.TrimSpace(p.Email),
		phone:        strings.TrimSpace(p.Phone),
		addressLine1: strings.TrimSpace(p.AddressLine1),
		addressLine2: strings.TrimSpace(p.AddressLine2),
		city:         strings.TrimSpace(p.City),
		state:        strings.TrimSpace(p.State),
		postalCode:   strings.TrimSpace(p.PostalCode),
		country:      strings.TrimSpace(p.Country),
	}

	required := []struct {
		name  string
		value string
	}{
		{"fullName", addr.fullName},
		{"email", addr.email},
		{"phone", addr.phone},
		{"addressLine1", addr.addressLine1},
		{"city", addr.city},
		{"state", addr.state},
		{"postalCode", addr.postalCode},
		{"country", addr.country},
	}
	for _, f := range required {
		if f.value == "" {
			return ShippingAddress{}, fmt.Errorf("address field %s cannot be empty", f.name)
		}
	}

	if !strings.Contains(addr.email, "@") {
		return ShippingAddress{}, fmt.Errorf("address field email is not a valid email address")
	}
	for _, f := range required {
		if len(f.value) > 200 {
			return ShippingAddress{}, fmt.Errorf("address field %s cannot exceed 200 characters", f.name)
		}
	}
	if len(addr.addressLine2) > 200 {
		return ShippingAddress{}, fmt.Errorf("address field addressLine2 cannot exceed 200 characters")
	}

	return addr, nil
}

// MustNewShippingAddress creates a new ShippingAddress, panics on error
func MustNewShippingAddress(p ShippingAddressParams) ShippingAddress {
	addr, err := NewShippingAddress(p)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyShippingAddress returns an empty address
func EmptyShippingAddress() ShippingAddress {
	return ShippingAddress{}
}

// FullName returns the recipient name
func (a ShippingAddress) FullName() string {
	return a.fullName
}

// Email returns the contact email
func (a ShippingAddress) Email() string {
	return a.email
}

// Phone returns the contact phone number
func (a ShippingAddress) Phone() string {
	return a.phone
}

// AddressLine1 returns the first address line
func (a ShippingAddress) AddressLine1() string {
	return a.addressLine1
}

// AddressLine2 returns the optional second address line
func (a ShippingAddress) AddressLine2() string {
	return a.addressLine2
}

// City returns the city
func (a ShippingAddress) City() string {
	return a.city
}

// State returns the state or province
func (a ShippingAddress) State() string {
	return a.state
}

// PostalCode returns the postal code
func (a ShippingAddress) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a ShippingAddress) Country() string {
	return a.country
}

// IsEmpty returns true if the address has no fields set
func (a ShippingAddress) IsEmpty() bool {
	return a == ShippingAddress{}
}

// FullAddress returns the complete formatted address string
func (a ShippingAddress) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 7)
	parts = append(parts, a.addressLine1)
	if a.addressLine2 != "" {
		parts = append(parts, a.addressLine2)
	}
	parts = append(parts, a.city, a.state, a.postalCode, a.country)
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a ShippingAddress) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

// shippingAddressJSON is used for JSON marshaling/unmarshaling
type shippingAddressJSON struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingAddressJSON{
		FullName:     a.fullName,
		Email:        a.email,
		Phone:        a.phone,
		AddressLine1: a.addressLine1,
		AddressLine2: a.addressLine2,
		City:         a.city,
		State:        a.state,
		PostalCode:   a.postalCode,
		Country:      a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler
// Delegates to NewShippingAddress so validation rules apply consistently
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var v shippingAddressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if (v == shippingAddressJSON{}) {
		*a = EmptyShippingAddress()
		return nil
	}

	addr, err := NewShippingAddress(ShippingAddressParams{
		FullName:     v.FullName,
		Email:        v.Email,
		Phone:        v.Phone,
		AddressLine1: v.AddressLine1,
		AddressLine2: v.AddressLine2,
		City:         v.City,
		State:        v.State,
		PostalCode:   v.PostalCode,
		Country:      v.Country,
	})
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a ShippingAddress) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *ShippingAddress) Scan(value any) error {
	if value == nil {
		*a = EmptyShippingAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyShippingAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
