package pos

import (
	"errors"
	"math"

	"festpos/internal/domain"
)

// VATRate is applied once, at completion time. Totals are never recomputed
// after an order is finalized.
const VATRate = 0.15

var ErrTenantMismatch = errors.New("product belongs to a different tenant")

// Cart is the in-progress, uncommitted order. All lines share one tenant:
// either the cart is empty, or every line's tenant equals the first line's.
type Cart struct {
	tenantID string
	items    []domain.OrderItem
}

// AddProduct appends a line for p, or bumps the quantity if a line for p
// already exists. Adding a product from another tenant while the cart is
// non-empty changes nothing and returns ErrTenantMismatch.
func (c *Cart) AddProduct(p domain.Product) error {
	if len(c.items) > 0 && p.TenantID != c.tenantID {
		return ErrTenantMismatch
	}
	if len(c.items) == 0 {
		c.tenantID = p.TenantID
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return nil
		}
	}
	c.items = append(c.items, domain.OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
	return nil
}

// RemoveProduct drops the matching line; removing an absent line is a no-op.
func (c *Cart) RemoveProduct(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	if len(c.items) == 0 {
		c.tenantID = ""
	}
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line. Updating an absent line is a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveProduct(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
	c.tenantID = ""
}

func (c *Cart) Empty() bool { return len(c.items) == 0 }

func (c *Cart) TenantID() string { return c.tenantID }

// Items returns a copy; callers cannot reach into the cart's lines.
func (c *Cart) Items() []domain.OrderItem {
	out := make([]domain.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Subtotal() float64 {
	sum := 0.0
	for _, it := range c.items {
		sum += it.Price * float64(it.Quantity)
	}
	return round2(sum)
}

func (c *Cart) VAT() float64 { return round2(c.Subtotal() * VATRate) }

func (c *Cart) Total() float64 { return round2(c.Subtotal() + c.VAT()) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
