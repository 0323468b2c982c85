// Package types - Currency
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRUB Currency = "RUB"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
