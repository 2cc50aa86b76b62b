package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. The unit price is snapshotted when
// the line is added so in-flight carts survive catalog price edits.
type Line struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is the line quantity times its unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ephemeral cart document stored in Redis per client token.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart returns an empty cart for a client token.
func NewCart(token string) *Cart {
	return &Cart{Token: token, Lines: []Line{}}
}

// Total sums all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// upsertLine merges quantity into an existing line for the same product or
// appends a new line.
func (c *Cart) upsertLine(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// removeLine drops the line for a product id. It reports whether a line
// was removed.
func (c *Cart) removeLine(productID int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}
