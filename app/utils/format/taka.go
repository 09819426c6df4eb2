package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var taka = accounting.Accounting{Symbol: "৳", Precision: 0, Thousand: ","}

// FormatTaka renders an amount for templates. Unparseable input renders as
// zero rather than breaking the page.
func FormatTaka(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return taka.FormatMoneyDecimal(decimal.Zero)
		}
		decAmount = parsed
	default:
		return taka.FormatMoneyDecimal(decimal.Zero)
	}

	return taka.FormatMoneyDecimal(decAmount)
}
