// Package currency rounds and formats monetary amounts for display.
// Amounts are decimal.Decimal throughout; only the presentation layer rounds.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported currencies.
const (
	INR Currency = "INR" // Indian Rupee
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	JPY Currency = "JPY" // Japanese Yen
)

// DefaultCurrency is used when the configured code is unknown.
const DefaultCurrency = INR

// CurrencyInfo contains metadata about a currency.
type CurrencyInfo struct {
	Code          Currency
	Name          string
	Symbol        string
	DecimalPlaces int    // Minor unit digits (2 for INR, 0 for JPY)
	SymbolBefore  bool   // Whether symbol appears before amount
	ThousandsSep  string // Thousands separator
	DecimalSep    string // Decimal separator
}

var currencies = map[Currency]CurrencyInfo{
	INR: {Code: INR, Name: "Indian Rupee", Symbol: "₹", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	USD: {Code: USD, Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	EUR: {Code: EUR, Name: "Euro", Symbol: "€", DecimalPlaces: 2, SymbolBefore: false, ThousandsSep: ".", DecimalSep: ","},
	GBP: {Code: GBP, Name: "British Pound", Symbol: "£", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	JPY: {Code: JPY, Name: "Japanese Yen", Symbol: "¥", DecimalPlaces: 0, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns metadata for a currency code.
func GetInfo(code Currency) (CurrencyInfo, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Parse returns the currency for code, or DefaultCurrency when it is unknown.
func Parse(code string) Currency {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := currencies[c]; ok {
		return c
	}
	return DefaultCurrency
}

// Money represents a monetary amount with currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// NewMoney creates a new Money value.
func NewMoney(amount decimal.Decimal, curr Currency) Money {
	if curr == "" {
		curr = DefaultCurrency
	}
	return Money{Amount: amount, Currency: curr}
}

func (m Money) info() CurrencyInfo {
	info, ok := GetInfo(m.Currency)
	if !ok {
		info = currencies[DefaultCurrency]
	}
	return info
}

// Round rounds the amount to the currency's minor unit using half-up rounding.
func (m Money) Round() Money {
	return NewMoney(m.Amount.Round(int32(m.info().DecimalPlaces)), m.Currency)
}

// Format renders the amount with symbol and separators, e.g. ₹103,150.00.
func (m Money) Format() string {
	info := m.info()
	places := int32(info.DecimalPlaces)
	fixed := m.Amount.Abs().Round(places).StringFixed(places)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	out := groupThousands(intPart, info.ThousandsSep)
	if fracPart != "" {
		out += info.DecimalSep + fracPart
	}

	sign := ""
	if m.Amount.Round(places).IsNegative() {
		sign = "-"
	}
	if info.SymbolBefore {
		return sign + info.Symbol + out
	}
	return sign + out + info.Symbol
}

// String returns the rounded amount as a plain string.
func (m Money) String() string {
	return m.Round().Amount.StringFixed(int32(m.info().DecimalPlaces))
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatAmount is shorthand for NewMoney(amount, curr).Format().
func FormatAmount(amount decimal.Decimal, curr Currency) string {
	return NewMoney(amount, curr).Format()
}
