package pos

import (
	"errors"
	"testing"

	"festpos/internal/domain"
)

func prod(id, tenant string, price float64) domain.Product {
	return domain.Product{ID: id, TenantID: tenant, Name: id, Price: price, Active: true}
}

func TestCartSingleTenantInvariant(t *testing.T) {
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddProduct(prod("p2", "t2", 5)); !errors.Is(err, ErrTenantMismatch) {
		t.Fatalf("want ErrTenantMismatch, got %v", err)
	}
	// rejected add changes nothing
	items := c.Items()
	if len(items) != 1 || items[0].ProductID != "p1" || items[0].Quantity != 1 {
		t.Fatalf("cart changed by rejected add: %+v", items)
	}
	if c.TenantID() != "t1" {
		t.Fatalf("tenant changed: %s", c.TenantID())
	}
	// same tenant still welcome
	if err := c.AddProduct(prod("p3", "t1", 7)); err != nil {
		t.Fatal(err)
	}
	for _, it := range c.Items() {
		if it.ProductID == "p3" {
			return
		}
	}
	t.Fatal("p3 not added")
}

func TestCartQuantityMerge(t *testing.T) {
	var c Cart
	p := prod("p1", "t1", 10)
	if err := c.AddProduct(p); err != nil {
		t.Fatal(err)
	}
	if err := c.AddProduct(p); err != nil {
		t.Fatal(err)
	}
	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("want 1 merged line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("want quantity 2, got %d", items[0].Quantity)
	}
}

func TestCartNonPositiveQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -5} {
		var c Cart
		if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
			t.Fatal(err)
		}
		c.UpdateQuantity("p1", qty)
		if !c.Empty() {
			t.Fatalf("quantity %d should remove the line", qty)
		}
	}
}

func TestCartMissingLineOpsAreNoops(t *testing.T) {
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	c.RemoveProduct("ghost")
	c.UpdateQuantity("ghost", 4)
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("missing-line ops mutated cart: %+v", items)
	}
}

func TestCartTotalArithmetic(t *testing.T) {
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10.00)); err != nil {
		t.Fatal(err)
	}
	c.UpdateQuantity("p1", 2)
	if err := c.AddProduct(prod("p2", "t1", 5.00)); err != nil {
		t.Fatal(err)
	}

	if got := c.Subtotal(); got != 25.00 {
		t.Fatalf("subtotal: want 25.00, got %v", got)
	}
	if got := c.VAT(); got != 3.75 {
		t.Fatalf("vat: want 3.75, got %v", got)
	}
	if got := c.Total(); got != 28.75 {
		t.Fatalf("total: want 28.75, got %v", got)
	}
}

func TestCartClearResetsTenant(t *testing.T) {
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if !c.Empty() || c.TenantID() != "" {
		t.Fatal("clear should empty cart and forget tenant")
	}
	// a different tenant is fine after clearing
	if err := c.AddProduct(prod("p2", "t2", 5)); err != nil {
		t.Fatal(err)
	}
}
