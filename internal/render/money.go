package render

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// MoneyFormat groups amounts with go-money's Formatter.
type MoneyFormat struct {
	formatter *money.Formatter
	fraction  int
}

// NewMoneyFormat returns a formatter with the given separators. symbol may
// be empty.
func NewMoneyFormat(symbol, thousand, decimalSep string, fraction int) MoneyFormat {
	template := "1"
	if symbol != "" {
		template = "$1"
	}
	return MoneyFormat{
		formatter: money.NewFormatter(fraction, decimalSep, thousand, symbol, template),
		fraction:  fraction,
	}
}

// Format rounds d to the configured fraction digits and groups it.
func (f MoneyFormat) Format(d decimal.Decimal) string {
	minor := d.Round(int32(f.fraction)).Shift(int32(f.fraction))
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return d.StringFixed(int32(f.fraction))
	}
	return f.formatter.Format(minor.IntPart())
}

// FormatPercent renders p with two decimals and a percent sign.
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
