// Package money formats decimal amounts as localized price labels.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts such as "1 299,00 SEK" for one locale and
// currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter parses a BCP 47 locale ("sv-SE") and an ISO 4217 code ("SEK").
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Currency returns the ISO 4217 code.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format rounds d to the currency's standard scale and localizes it.
func (f *Formatter) Format(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	v := d.Round(int32(scale)).InexactFloat64()
	return f.printer.Sprintf("%v %s", number.Decimal(v, number.Scale(scale)), f.unit)
}
