package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the cart. Price is a snapshot taken at
// add-time so later catalog edits do not change what the customer saw.
type LineItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
	Qty       int
}

// Cart holds the ordered line items for one browser session. It is never
// persisted server-side; the session layer serializes it into the cookie.
type Cart struct {
	Items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges qty into an existing line for the same product or appends a
// new line with the given snapshot.
func (c *Cart) AddItem(productID, name string, price decimal.Decimal, image string, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty += qty
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Image:     image,
		Qty:       qty,
	})
}

// RemoveItem deletes the matching line item, no-op when absent.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateItemQuantity sets the quantity for a line item. A quantity of zero or
// below removes the line.
func (c *Cart) UpdateItemQuantity(productID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of quantities across all line items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Qty
	}
	return total
}

// TotalPrice is the sum of price x quantity per line.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return total
}

// Find returns the line item for a product, nil when absent.
func (c *Cart) Find(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
