// Package currency holds the currencies a user can pick for the dashboard and
// renders amounts in the currency's locale.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrUnsupported = errors.New("unsupported currency")

type Currency struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Locale string `json:"locale"`
}

var Currencies = []Currency{
	{Value: "USD", Label: "$ Dollar", Locale: "en-US"},
	{Value: "EUR", Label: "€ Euro", Locale: "de-DE"},
	{Value: "JPY", Label: "¥ Yen", Locale: "ja-JP"},
	{Value: "GBP", Label: "£ Pound", Locale: "en-GB"},
}

// Lookup returns the supported currency for an ISO code, case-insensitively.
func Lookup(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.Value == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Validate reports whether code is a well-formed ISO 4217 code present in Currencies.
func Validate(code string) error {
	if _, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code))); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	if _, ok := Lookup(code); !ok {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	return nil
}

// Format renders amount with the grouping and decimals of the currency's locale,
// followed by the ISO code: "1,234.50 USD", "1.234,50 EUR", "1,235 JPY".
// Unknown codes fall back to USD.
func Format(code string, amount decimal.Decimal) string {
	c, ok := Lookup(code)
	if !ok {
		c, _ = Lookup("USD")
	}
	unit := currency.MustParseISO(c.Value)
	scale, _ := currency.Standard.Rounding(unit)

	p := message.NewPrinter(language.MustParse(c.Locale))
	f, _ := amount.Round(int32(scale)).Float64()
	return p.Sprintf("%v", number.Decimal(f, number.Scale(scale))) + " " + unit.String()
}
