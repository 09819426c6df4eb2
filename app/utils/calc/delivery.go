package calc

import "github.com/shopspring/decimal"

const (
	AreaInsideDhaka  = "inside_dhaka"
	AreaOutsideDhaka = "outside_dhaka"
)

var (
	DefaultFeeInsideDhaka  = decimal.NewFromInt(60)
	DefaultFeeOutsideDhaka = decimal.NewFromInt(120)
)

// DeliveryFeeForArea picks the flat fee for a shipping area. Unknown areas
// get the outside-Dhaka fee.
func DeliveryFeeForArea(area string, insideFee, outsideFee decimal.Decimal) decimal.Decimal {
	if area == AreaInsideDhaka {
		return insideFee
	}
	return outsideFee
}

func CalculateGrandTotal(subtotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee)
}
