package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAddItemMergesSameProduct(t *testing.T) {
	c := New()

	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "/images/p1.jpg", 2)
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "/images/p1.jpg", 3)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Qty)
	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(600)))
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	c := New()

	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "", 1)
	// a second add with a different price must not rewrite the snapshot
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(150), "", 1)

	assert.True(t, c.Items[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(240)))
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	c := New()
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "", 2)

	c.RemoveItem("does-not-exist")

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "", 2)
	c.AddItem("p2", "Green Tea", decimal.NewFromInt(350), "", 1)

	c.RemoveItem("p1")

	assert.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
}

func TestUpdateItemQuantity(t *testing.T) {
	c := New()
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "", 2)

	c.UpdateItemQuantity("p1", 7)
	assert.Equal(t, 7, c.TotalItems())

	c.UpdateItemQuantity("p1", 0)
	assert.True(t, c.IsEmpty(), "quantity <= 0 removes the line item")
}

func TestClearIsIdempotent(t *testing.T) {
	c := New()
	c.AddItem("p1", "Mango Juice", decimal.NewFromInt(120), "", 2)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.Zero))

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCheckoutScenarioTotals(t *testing.T) {
	c := New()
	c.AddItem("p1", "Panjabi", decimal.NewFromInt(500), "", 2)
	c.AddItem("p2", "Sneakers", decimal.NewFromInt(1200), "", 1)

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(2200)))

	deliveryFee := decimal.NewFromInt(60)
	assert.True(t, c.TotalPrice().Add(deliveryFee).Equal(decimal.NewFromInt(2260)))
}
