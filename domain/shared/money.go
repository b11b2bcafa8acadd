package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money value object - a positive amount in a single currency.
// Amounts carry at most two fractional digits; the currency is a 3-letter code.
// Money is immutable: arithmetic returns new instances.
type Money struct {
	amount   decimal.Decimal
	currency string
}

var currencyMismatchTmpl = "cannot combine %s with %s"

// NewMoney creates a validated Money value object.
func NewMoney(amount decimal.Decimal, currency string) (*Money, error) {
	if amount.Sign() <= 0 {
		return nil, NewValidationError("money", "amount", "amount must be greater than 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, NewValidationError("money", "amount", "amount cannot have more than 2 decimal places")
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, NewValidationError("money", "currency",
			fmt.Sprintf("currency must be a 3-letter code, got %q", currency))
	}

	return &Money{amount: amount, currency: currency}, nil
}

// MustMoney is a test/fixture helper; it panics on invalid input.
func MustMoney(amount string, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return *m
}

// RebuildMoney reconstructs Money from persisted state without validation.
// For repository use only; values were validated when first stored.
func RebuildMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the 3-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two same-currency amounts.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, NewValidationError("money", "currency",
			fmt.Sprintf(currencyMismatchTmpl, m.currency, other.currency))
	}
	return &Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MultiplyByQuantity scales the amount by an order-line quantity,
// rounding to 2 decimal places.
func (m Money) MultiplyByQuantity(quantity int) (*Money, error) {
	if quantity <= 0 {
		return nil, NewValidationError("money", "quantity", "quantity must be positive")
	}
	return &Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		currency: m.currency,
	}, nil
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String implements Stringer, e.g. "50.00 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
