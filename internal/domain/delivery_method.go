package domain

import (
	"fmt"
	"strings"
	"time"
)

// Currency is the settlement currency of a delivery method price.
type Currency string

const (
	CurrencyUSDC Currency = "USDC"
	CurrencyUSD  Currency = "USD"
	CurrencyNGN  Currency = "NGN"
	CurrencyEUR  Currency = "EUR"
)

// DefaultCurrency is applied when a request omits the currency field.
const DefaultCurrency = CurrencyNGN

var supportedCurrencies = map[Currency]struct{}{
	CurrencyUSDC: {},
	CurrencyUSD:  {},
	CurrencyNGN:  {},
	CurrencyEUR:  {},
}

// Valid reports whether c is a member of the supported currency set.
func (c Currency) Valid() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// DeliveryMethod is a shipping option offered at checkout.
// Name and Code are each unique across the live catalog; Code is the
// correlation key used when reconciling against the storefront's list.
type DeliveryMethod struct {
	ID                    string    `json:"_id"`
	Name                  string    `json:"name"`
	Code                  string    `json:"code"`
	Description           string    `json:"description,omitempty"`
	Price                 float64   `json:"price"`
	Currency              Currency  `json:"currency"`
	EstimatedDeliveryTime string    `json:"estimatedDeliveryTime,omitempty"`
	IsActive              bool      `json:"isActive"`
	CreatedAt             time.Time `json:"createdAt"`
}

// NewDeliveryMethod builds a validated record ready for insertion.
// ID and CreatedAt are assigned by the repository.
func NewDeliveryMethod(name, code, description string, price float64, currency Currency, eta string, isActive bool) (*DeliveryMethod, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	m := &DeliveryMethod{
		Name:                  name,
		Code:                  code,
		Description:           description,
		Price:                 price,
		Currency:              currency,
		EstimatedDeliveryTime: eta,
		IsActive:              isActive,
	}
	if m.Currency == "" {
		m.Currency = DefaultCurrency
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate enforces the field invariants of a delivery method.
func (m *DeliveryMethod) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if m.Code == "" {
		return fmt.Errorf("%w: code is required", ErrValidation)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if !m.Currency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", ErrValidation, m.Currency)
	}
	return nil
}

// WithUpdates returns a copy of m with the non-nil fields of u applied.
// The receiver is never mutated; ID and CreatedAt carry over unchanged.
func (m DeliveryMethod) WithUpdates(u DeliveryMethodUpdate) DeliveryMethod {
	if u.Name != nil {
		m.Name = strings.TrimSpace(*u.Name)
	}
	if u.Code != nil {
		m.Code = strings.ToUpper(strings.TrimSpace(*u.Code))
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.Price != nil {
		m.Price = *u.Price
	}
	if u.Currency != nil {
		m.Currency = *u.Currency
	}
	if u.EstimatedDeliveryTime != nil {
		m.EstimatedDeliveryTime = *u.EstimatedDeliveryTime
	}
	if u.IsActive != nil {
		m.IsActive = *u.IsActive
	}
	return m
}

// DeliveryMethodUpdate carries a partial update; nil fields are untouched.
type DeliveryMethodUpdate struct {
	Name                  *string   `json:"name,omitempty"`
	Code                  *string   `json:"code,omitempty"`
	Description           *string   `json:"description,omitempty"`
	Price                 *float64  `json:"price,omitempty"`
	Currency              *Currency `json:"currency,omitempty"`
	EstimatedDeliveryTime *string   `json:"estimatedDeliveryTime,omitempty"`
	IsActive              *bool     `json:"isActive,omitempty"`
}

// DefaultDeliveryMethods are seeded once into an empty catalog.
func DefaultDeliveryMethods() []DeliveryMethod {
	return []DeliveryMethod{
		{
			Name:                  "Standard",
			Code:                  "STD",
			Description:           "Standard delivery",
			Price:                 2500,
			Currency:              CurrencyNGN,
			EstimatedDeliveryTime: "3-7 business days",
			IsActive:              true,
		},
		{
			Name:                  "Express",
			Code:                  "EXP",
			Description:           "Express delivery",
			Price:                 5000,
			Currency:              CurrencyNGN,
			EstimatedDeliveryTime: "1-2 business days",
			IsActive:              true,
		},
		{
			Name:                  "International",
			Code:                  "INT",
			Description:           "International delivery",
			Price:                 15000,
			Currency:              CurrencyNGN,
			EstimatedDeliveryTime: "7-14 business days",
			IsActive:              true,
		},
	}
}
