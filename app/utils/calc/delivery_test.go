package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryFeeForArea(t *testing.T) {
	inside := decimal.NewFromInt(60)
	outside := decimal.NewFromInt(120)

	assert.True(t, DeliveryFeeForArea(AreaInsideDhaka, inside, outside).Equal(inside))
	assert.True(t, DeliveryFeeForArea(AreaOutsideDhaka, inside, outside).Equal(outside))
	assert.True(t, DeliveryFeeForArea("sylhet", inside, outside).Equal(outside))
}

func TestCalculateGrandTotal(t *testing.T) {
	total := CalculateGrandTotal(decimal.NewFromInt(2200), decimal.NewFromInt(60))
	assert.True(t, total.Equal(decimal.NewFromInt(2260)), "got %s", total)
}
