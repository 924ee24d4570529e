// Package money formats base-currency amounts for display. It is not used by
// any computation; results keep full float precision until presented.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol of the base currency (Peruvian sol).
const Symbol = "S/"

// Formatter renders amounts with two decimals and locale grouping.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for the given BCP 47 tag. An unparsable
// tag falls back to es-PE.
func NewFormatter(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.MustParse("es-PE")
	}
	return &Formatter{printer: message.NewPrinter(t)}
}

// Round2 rounds half away from zero to two decimals.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Format returns "S/ 1,234.50" style text (separators depend on the locale).
func (f *Formatter) Format(amount float64) string {
	return Symbol + " " + f.printer.Sprint(number.Decimal(Round2(amount), number.Scale(2)))
}

// Amounts is a bundle of formatted figures keyed by field name.
type Amounts map[string]string

// FormatAll formats every value of figures.
func (f *Formatter) FormatAll(figures map[string]float64) Amounts {
	out := make(Amounts, len(figures))
	for k, v := range figures {
		out[k] = f.Format(v)
	}
	return out
}
