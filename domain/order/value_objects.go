package order

import (
	"strings"

	"commerce/domain/shared"
)

// ============================================================================
// Quantity
// ============================================================================

// Quantity value object - a positive order-line amount.
type Quantity struct {
	value int
}

// NewQuantity creates a validated Quantity.
func NewQuantity(value int) (*Quantity, error) {
	if value <= 0 {
		return nil, shared.NewValidationError("order", "quantity", "quantity must be greater than 0")
	}
	return &Quantity{value: value}, nil
}

// RebuildQuantity reconstructs a Quantity from persisted state without
// validation. For repository use only.
func RebuildQuantity(value int) Quantity {
	return Quantity{value: value}
}

// Value returns the quantity as an int.
func (q Quantity) Value() int {
	return q.value
}

// Equals compares two quantities.
func (q Quantity) Equals(other Quantity) bool {
	return q.value == other.value
}

// ============================================================================
// Address
// ============================================================================

// Address value object - a validated shipping address with no behavior
// beyond its construction rules.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// NewAddress creates a validated shipping address.
func NewAddress(street, city, state, postalCode, country string) (*Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)

	if len(street) < 5 {
		return nil, shared.NewValidationError("order", "street", "street must have at least 5 characters")
	}
	if len(city) < 2 {
		return nil, shared.NewValidationError("order", "city", "city must have at least 2 characters")
	}
	if strings.TrimSpace(state) == "" {
		return nil, shared.NewValidationError("order", "state", "state is required")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewValidationError("order", "postal_code", "postal code is required")
	}
	if strings.TrimSpace(country) == "" {
		return nil, shared.NewValidationError("order", "country", "country is required")
	}

	return &Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
	}, nil
}

// RebuildAddress reconstructs an Address from persisted state without
// validation. For repository use only.
func RebuildAddress(street, city, state, postalCode, country string) Address {
	return Address{street: street, city: city, state: state, postalCode: postalCode, country: country}
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// String implements Stringer.
func (a Address) String() string {
	return a.street + ", " + a.city + ", " + a.state + " " + a.postalCode + ", " + a.country
}

// ============================================================================
// CustomerInfo
// ============================================================================

// CustomerInfo value object - the customer identity snapshot an order carries.
type CustomerInfo struct {
	customerID string
	name       string
	email      string
	phone      string
}

// NewCustomerInfo creates validated customer information.
func NewCustomerInfo(customerID, name, email, phone string) (*CustomerInfo, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, shared.NewValidationError("order", "customer_id", "customer ID is required")
	}
	if len(strings.TrimSpace(name)) < 3 {
		return nil, shared.NewValidationError("order", "customer_name", "customer name must have at least 3 characters")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("order", "customer_email", "email must be valid")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewValidationError("order", "customer_phone", "phone is required")
	}

	return &CustomerInfo{
		customerID: customerID,
		name:       strings.TrimSpace(name),
		email:      strings.TrimSpace(email),
		phone:      phone,
	}, nil
}

// RebuildCustomerInfo reconstructs CustomerInfo from persisted state without
// validation. For repository use only.
func RebuildCustomerInfo(customerID, name, email, phone string) CustomerInfo {
	return CustomerInfo{customerID: customerID, name: name, email: email, phone: phone}
}

func (c CustomerInfo) CustomerID() string { return c.customerID }
func (c CustomerInfo) Name() string       { return c.name }
func (c CustomerInfo) Email() string      { return c.email }
func (c CustomerInfo) Phone() string      { return c.phone }
