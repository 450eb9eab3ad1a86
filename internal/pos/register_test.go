package pos

import (
	"errors"
	"testing"

	"festpos/internal/domain"
)

func testRegister(t *testing.T) *Register {
	t.Helper()
	reg := NewRegister(NewFileStore(t.TempDir()))
	reg.Hydrate()
	reg.ReplaceCatalog(
		[]domain.Tenant{
			{ID: "t1", Name: "Braai", RevenueSharePct: 70},
			{ID: "t2", Name: "Koffie", RevenueSharePct: 60},
		},
		[]domain.Product{
			prod("p1", "t1", 55.00),
			prod("p2", "t1", 48.50),
			prod("p3", "t2", 38.00),
		},
	)
	return reg
}

func TestRegisterOrderFlow(t *testing.T) {
	reg := testRegister(t)
	if err := reg.StartShift(domain.Cashier{ID: "1001", Name: "Thandi"}, 500); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p3"); !errors.Is(err, ErrTenantMismatch) {
		t.Fatalf("cross-tenant add: want ErrTenantMismatch, got %v", err)
	}
	if err := reg.AddProduct("ghost"); !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}

	o, err := reg.CompleteOrder()
	if err != nil {
		t.Fatal(err)
	}
	if o.CashierID != "1001" {
		t.Fatalf("cashier not stamped on order: %+v", o)
	}
	if cv := reg.CartView(); len(cv.Items) != 0 {
		t.Fatal("cart should be empty after completion")
	}
	if len(reg.Orders()) != 1 {
		t.Fatal("order not in history")
	}
	if last, ok := reg.LastCompleted(); !ok || last.ID != o.ID {
		t.Fatal("last completed missing")
	}
}

func TestRegisterNotHydratedRefusesLedgerOps(t *testing.T) {
	reg := NewRegister(NewFileStore(t.TempDir()))
	if _, err := reg.CompleteOrder(); !errors.Is(err, ErrNotHydrated) {
		t.Fatalf("want ErrNotHydrated, got %v", err)
	}
	if err := reg.ResetShiftData(); !errors.Is(err, ErrNotHydrated) {
		t.Fatalf("want ErrNotHydrated, got %v", err)
	}
	if reg.Hydrated() {
		t.Fatal("register should not report hydrated")
	}
}

func TestRegisterSelectTenantClearsCart(t *testing.T) {
	reg := testRegister(t)
	if err := reg.StartShift(domain.Cashier{ID: "1001"}, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t2"); err != nil {
		t.Fatal(err)
	}
	if cv := reg.CartView(); len(cv.Items) != 0 {
		t.Fatal("switching tenants should start a fresh cart")
	}
	if err := reg.SelectTenant("ghost"); !errors.Is(err, ErrUnknownTenant) {
		t.Fatalf("want ErrUnknownTenant, got %v", err)
	}
}

// Rehydration restores the order history exactly, but never the cart or
// session.
func TestRegisterRehydration(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegister(NewFileStore(dir))
	reg.Hydrate()
	reg.ReplaceCatalog(
		[]domain.Tenant{{ID: "t1", Name: "Braai"}},
		[]domain.Product{prod("p1", "t1", 55.00)},
	)
	if err := reg.StartShift(domain.Cashier{ID: "1001"}, 500); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	o1, err := reg.CompleteOrder()
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	o2, err := reg.CompleteOrder()
	if err != nil {
		t.Fatal(err)
	}
	if reg.MarkSynced([]string{o1.ID}) != 1 {
		t.Fatal("mark synced failed")
	}
	// leave an in-progress cart behind
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}

	// simulate a reload
	reloaded := NewRegister(NewFileStore(dir))
	reloaded.Hydrate()

	orders := reloaded.Orders()
	if len(orders) != 2 {
		t.Fatalf("want 2 restored orders, got %d", len(orders))
	}
	if orders[0].ID != o1.ID || orders[1].ID != o2.ID {
		t.Fatal("order sequence not preserved")
	}
	if !orders[0].Synced || orders[1].Synced {
		t.Fatal("synced flags not preserved")
	}
	if orders[0].Total != o1.Total {
		t.Fatal("totals not preserved")
	}
	if cv := reloaded.CartView(); len(cv.Items) != 0 {
		t.Fatal("cart must not survive a reload")
	}
	if reloaded.SessionState() != LoggedOut {
		t.Fatal("session must not survive a reload")
	}
}

func TestRegisterResetShiftGate(t *testing.T) {
	reg := testRegister(t)
	if err := reg.StartShift(domain.Cashier{ID: "1001"}, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.CompleteOrder(); err != nil {
		t.Fatal(err)
	}

	if err := reg.ResetShiftData(); !errors.Is(err, ErrReportingPending) {
		t.Fatalf("want ErrReportingPending, got %v", err)
	}
	reg.SetReportingDone(true)
	if err := reg.ResetShiftData(); err != nil {
		t.Fatal(err)
	}
	if len(reg.Orders()) != 0 {
		t.Fatal("history should be cleared")
	}

	// the cleared history is what gets persisted
	reloaded := NewRegister(reg.store)
	reloaded.Hydrate()
	if len(reloaded.Orders()) != 0 {
		t.Fatal("cleared history leaked back from the snapshot")
	}
}

func TestRegisterRevenueReport(t *testing.T) {
	reg := testRegister(t)
	if err := reg.StartShift(domain.Cashier{ID: "1001"}, 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddProduct("p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.CompleteOrder(); err != nil {
		t.Fatal(err)
	}

	r := reg.RevenueReport()
	if r.OrderCount != 1 {
		t.Fatalf("report order count: %d", r.OrderCount)
	}
	if r.Rows[0].TenantID != "t1" || r.Rows[0].Gross != 63.25 {
		t.Fatalf("report row: %+v", r.Rows[0])
	}
}
