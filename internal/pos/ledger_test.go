package pos

import (
	"errors"
	"strings"
	"testing"
)

func TestCompleteFreezesCartAndClearsIt(t *testing.T) {
	var l Ledger
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	c.UpdateQuantity("p1", 2)

	o, err := l.Complete(&c, "1001")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Empty() {
		t.Fatal("cart should be cleared by completion")
	}
	if len(l.Orders()) != 1 {
		t.Fatalf("history length: want 1, got %d", len(l.Orders()))
	}
	if o.TenantID != "t1" || o.CashierID != "1001" || o.Synced {
		t.Fatalf("bad order: %+v", o)
	}
	if o.Subtotal != 20.00 || o.VAT != 3.00 || o.Total != 23.00 {
		t.Fatalf("bad totals: %+v", o)
	}
	if !strings.Contains(o.ID, "-") {
		t.Fatalf("order id missing random suffix: %s", o.ID)
	}
	if last, ok := l.LastCompleted(); !ok || last.ID != o.ID {
		t.Fatal("last completed not recorded")
	}
}

func TestCompleteEmptyCartIsNoop(t *testing.T) {
	var l Ledger
	var c Cart
	if _, err := l.Complete(&c, ""); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if len(l.Orders()) != 0 {
		t.Fatal("history should be unchanged")
	}
}

func TestOrderIDsUnique(t *testing.T) {
	var l Ledger
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		var c Cart
		if err := c.AddProduct(prod("p1", "t1", 1)); err != nil {
			t.Fatal(err)
		}
		o, err := l.Complete(&c, "")
		if err != nil {
			t.Fatal(err)
		}
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestMarkSyncedIdempotent(t *testing.T) {
	var l Ledger
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	o, err := l.Complete(&c, "")
	if err != nil {
		t.Fatal(err)
	}

	if n := l.MarkSynced([]string{o.ID}); n != 1 {
		t.Fatalf("first mark: want 1, got %d", n)
	}
	if n := l.MarkSynced([]string{o.ID}); n != 0 {
		t.Fatalf("second mark should change nothing, got %d", n)
	}
	if got := l.Orders()[0]; !got.Synced {
		t.Fatal("order should stay synced")
	}
	// unknown ids are ignored
	if n := l.MarkSynced([]string{"nope"}); n != 0 {
		t.Fatalf("unknown id marked %d orders", n)
	}
}

func TestClearGatedByReporting(t *testing.T) {
	var l Ledger
	var c Cart
	if err := c.AddProduct(prod("p1", "t1", 10)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Complete(&c, ""); err != nil {
		t.Fatal(err)
	}

	if l.CanClear() {
		t.Fatal("clear should be disallowed before reporting ack")
	}
	if err := l.Clear(); !errors.Is(err, ErrReportingPending) {
		t.Fatalf("want ErrReportingPending, got %v", err)
	}
	if len(l.Orders()) != 1 {
		t.Fatal("refused clear must not drop orders")
	}

	l.SetReportingDone(true)
	if !l.CanClear() {
		t.Fatal("clear should be allowed after reporting ack")
	}
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(l.Orders()) != 0 {
		t.Fatal("history should be empty")
	}
	if l.ReportingDone() {
		t.Fatal("reporting gate should reset with the history")
	}
}

func TestClearEmptyHistoryAllowed(t *testing.T) {
	var l Ledger
	if !l.CanClear() {
		t.Fatal("empty history should always be clearable")
	}
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
}
