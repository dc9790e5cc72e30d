package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

// Formatter renders numbers with the locale and currency of a DisplayConfig.
type Formatter struct {
	printer  *message.Printer
	tag      language.Tag
	currency string
}

// NewFormatter builds a Formatter. An absent or unparsable locale falls back
// to en-US and an absent currency symbol to "$".
func NewFormatter(display *contract.DisplayConfig) Formatter {
	if display == nil {
		display = &contract.DisplayConfig{}
	}
	tag, err := language.Parse(Or(display.Locale, DefaultLocale))
	if err != nil {
		tag = language.AmericanEnglish
	}
	return Formatter{
		printer:  message.NewPrinter(tag),
		tag:      tag,
		currency: Or(display.CurrencySymbol, DefaultCurrencySymbol),
	}
}

// Locale returns the resolved locale tag.
func (f Formatter) Locale() string {
	return f.tag.String()
}

// CurrencySymbol returns the resolved currency symbol.
func (f Formatter) CurrencySymbol() string {
	return f.currency
}

// Integer renders v as a grouped integer, e.g. 1245 -> "1,245" for en-US.
func (f Formatter) Integer(v float64) string {
	if f.printer == nil {
		f = NewFormatter(nil)
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// Currency renders v as Integer prefixed with the currency symbol.
func (f Formatter) Currency(v float64) string {
	if f.printer == nil {
		f = NewFormatter(nil)
	}
	return f.currency + f.Integer(v)
}
