package projection

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aevon-lab/salesboard/internal/core/aggregation"
)

// Formatter renders metrics for display with locale digit grouping.
type Formatter struct {
	printer     *message.Printer
	symbol      string
	placeholder string

	// Locale separators, read back from the printer once.
	group string
	point string
}

// NewFormatter creates a formatter. placeholder stands in for undefined values.
func NewFormatter(tag language.Tag, currencySymbol, placeholder string) *Formatter {
	p := message.NewPrinter(tag)
	return &Formatter{
		printer:     p,
		symbol:      currencySymbol,
		placeholder: placeholder,
		group:       between(p.Sprintf("%d", 1000), "1", "000", ","),
		point:       between(p.Sprintf("%.1f", 1.5), "1", "5", "."),
	}
}

// between returns what the printer put between prefix and suffix, or
// fallback when the output does not have that shape.
func between(s, prefix, suffix, fallback string) string {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) || len(s) <= len(prefix)+len(suffix) {
		return fallback
	}
	return s[len(prefix) : len(s)-len(suffix)]
}

// Money formats d with two decimals and the currency symbol, e.g. R$1,234.56.
// Digits come from the decimal itself, so large sums keep every cent.
func (f *Formatter) Money(d decimal.Decimal) string {
	d = d.Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + f.symbol + groupDigits(whole, f.group) + f.point + cents
}

// groupDigits inserts sep between every three digits counted from the right.
func groupDigits(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// NullMoney formats d, or the placeholder when d is null.
func (f *Formatter) NullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return f.placeholder
	}
	return f.Money(d.Decimal)
}

// Count formats an integer with digit grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Metrics renders the headline metrics.
func (f *Formatter) Metrics(m aggregation.Metrics) Display {
	return Display{
		OrderCount:        f.Count(m.OrderCount),
		TotalRevenue:      f.Money(m.TotalRevenue),
		AverageOrderValue: f.NullMoney(m.AverageOrderValue),
	}
}
