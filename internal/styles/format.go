package styles

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount as a whole number with thousands grouping
// and the currency marker of l.
func FormatCurrency(amount decimal.Decimal, l Labels) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-" + l.CurrencyPrefix + humanize.Comma(-whole)
	}
	return l.CurrencyPrefix + humanize.Comma(whole)
}

func FormatDate(t time.Time, l Labels) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(l.DateLayout)
}

func FormatManDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}

func safeValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
