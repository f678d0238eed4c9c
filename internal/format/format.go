// Package format renders currency amounts and word lists for summary sentences.
//
// Each concern has a locale-aware primary formatter and a manual fallback. The
// primary is tried first on every call; if it is missing, returns an error or
// panics, the fallback output is used instead. Formatting never fails the caller.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize/english"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol is prefixed to every formatted amount
const CurrencySymbol = "£"

// CurrencyFormatter formats an amount with a fixed number of fraction digits
type CurrencyFormatter interface {
	FormatCurrency(value float64, fractionDigits int) (string, error)
}

// ListFormatter joins items into a natural-language conjunction
type ListFormatter interface {
	FormatList(items []string) (string, error)
}

// Formatter pairs primary formatters with their manual fallbacks
type Formatter struct {
	currency CurrencyFormatter
	list     ListFormatter
}

// New creates a formatter. A nil primary means only the fallback is used.
func New(currency CurrencyFormatter, list ListFormatter) *Formatter {
	return &Formatter{
		currency: currency,
		list:     list,
	}
}

// Default returns the en-GB formatter
func Default() *Formatter {
	return New(NewLocaleCurrency(language.BritishEnglish), WordSeries{})
}

// FractionDigits returns 0 for amounts of 1000 or more, otherwise 2
func FractionDigits(value float64) int {
	if math.Abs(value) >= 1000 {
		return 0
	}
	return 2
}

// Currency formats value as GBP
func (f *Formatter) Currency(value float64) string {
	digits := FractionDigits(value)
	if f != nil && f.currency != nil {
		if s, ok := tryCurrency(f.currency, value, digits); ok {
			return s
		}
	}
	return FallbackCurrency(value, digits)
}

// List joins items as "A, B and C"
func (f *Formatter) List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	if f != nil && f.list != nil {
		if s, ok := tryList(f.list, items); ok {
			return s
		}
	}
	return FallbackList(items)
}

func tryCurrency(c CurrencyFormatter, value float64, digits int) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = "", false
		}
	}()
	s, err := c.FormatCurrency(value, digits)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func tryList(l ListFormatter, items []string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = "", false
		}
	}()
	s, err := l.FormatList(items)
	if err != nil {
		return "", false
	}
	return s, true
}

// FallbackCurrency formats without grouping, e.g. "£2708" or "£12.50"
func FallbackCurrency(value float64, digits int) string {
	return fmt.Sprintf("%s%.*f", CurrencySymbol, digits, value)
}

// FallbackList joins with ", " and " and " before the last item
func FallbackList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// LocaleCurrency formats amounts with locale digit grouping via golang.org/x/text
type LocaleCurrency struct {
	printer *message.Printer
}

// NewLocaleCurrency creates a currency formatter for the given locale
func NewLocaleCurrency(tag language.Tag) *LocaleCurrency {
	return &LocaleCurrency{printer: message.NewPrinter(tag)}
}

// FormatCurrency implements CurrencyFormatter
func (c *LocaleCurrency) FormatCurrency(value float64, fractionDigits int) (string, error) {
	if c == nil || c.printer == nil {
		return "", fmt.Errorf("locale printer not configured")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("cannot format non-finite amount")
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	digits := c.printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(fractionDigits),
		number.MaxFractionDigits(fractionDigits),
	))
	return sign + CurrencySymbol + digits, nil
}

// WordSeries joins lists with github.com/dustin/go-humanize/english
type WordSeries struct{}

// FormatList implements ListFormatter
func (WordSeries) FormatList(items []string) (string, error) {
	return english.WordSeries(items, "and"), nil
}
