package pos

import (
	"testing"

	"festpos/internal/domain"
)

func TestRevenueSplit(t *testing.T) {
	tenants := []domain.Tenant{
		{ID: "t1", Name: "Braai", RevenueSharePct: 70},
		{ID: "t2", Name: "Koffie", RevenueSharePct: 60},
	}
	orders := []domain.Order{
		{ID: "o1", TenantID: "t1", Total: 40.00, VAT: 5.22},
		{ID: "o2", TenantID: "t1", Total: 60.00, VAT: 7.83},
		{ID: "o3", TenantID: "t2", Total: 50.00, VAT: 6.52},
	}

	r := AllocateRevenue(orders, tenants)

	if len(r.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(r.Rows))
	}
	// sorted by gross descending
	if r.Rows[0].TenantID != "t1" {
		t.Fatalf("expected t1 first, got %s", r.Rows[0].TenantID)
	}
	t1 := r.Rows[0]
	if t1.OrderCount != 2 || t1.Gross != 100.00 {
		t.Fatalf("t1 aggregation: %+v", t1)
	}
	if t1.TenantShare != 70.00 || t1.OrganizerShare != 30.00 {
		t.Fatalf("t1 split: %+v", t1)
	}
	t2 := r.Rows[1]
	if t2.TenantShare != 30.00 || t2.OrganizerShare != 20.00 {
		t.Fatalf("t2 split: %+v", t2)
	}

	// grand totals are column sums
	if r.Gross != 150.00 || r.TenantShare != 100.00 || r.OrganizerShare != 50.00 {
		t.Fatalf("grand totals: %+v", r)
	}
	if r.OrderCount != 3 {
		t.Fatalf("order count: %d", r.OrderCount)
	}
	// VAT total comes from the orders, not from the split
	if r.VAT != 19.57 {
		t.Fatalf("vat total: %v", r.VAT)
	}
}

func TestRevenueZeroShareHonored(t *testing.T) {
	tenants := []domain.Tenant{{ID: "t1", Name: "Crafts", RevenueSharePct: 0}}
	orders := []domain.Order{{ID: "o1", TenantID: "t1", Total: 100.00}}

	r := AllocateRevenue(orders, tenants)
	if r.Rows[0].SharePct != 0 {
		t.Fatalf("configured 0%% share must not fall back to the default: %+v", r.Rows[0])
	}
	if r.Rows[0].TenantShare != 0 || r.Rows[0].OrganizerShare != 100.00 {
		t.Fatalf("0%% split: %+v", r.Rows[0])
	}
}

func TestRevenueDefaultShareForInvalidPct(t *testing.T) {
	tenants := []domain.Tenant{{ID: "t1", Name: "Broken", RevenueSharePct: 130}}
	orders := []domain.Order{{ID: "o1", TenantID: "t1", Total: 100.00}}

	r := AllocateRevenue(orders, tenants)
	if r.Rows[0].TenantShare != 70.00 || r.Rows[0].OrganizerShare != 30.00 {
		t.Fatalf("out-of-range share should fall back to 70/30: %+v", r.Rows[0])
	}
}

func TestRevenueUnknownTenantReported(t *testing.T) {
	orders := []domain.Order{{ID: "o1", TenantID: "ghost", Total: 10.00}}
	r := AllocateRevenue(orders, nil)
	if len(r.Rows) != 1 || r.Rows[0].TenantID != "ghost" {
		t.Fatalf("order for missing tenant dropped: %+v", r.Rows)
	}
	if r.Rows[0].SharePct != DefaultTenantSharePct {
		t.Fatalf("missing tenant should get the default share: %+v", r.Rows[0])
	}
}

func TestRevenueStableTieOrder(t *testing.T) {
	tenants := []domain.Tenant{
		{ID: "t1", Name: "A"},
		{ID: "t2", Name: "B"},
		{ID: "t3", Name: "C"},
	}
	// t2 and t3 tie on gross; list order must hold
	orders := []domain.Order{
		{ID: "o1", TenantID: "t2", Total: 20},
		{ID: "o2", TenantID: "t3", Total: 20},
		{ID: "o3", TenantID: "t1", Total: 50},
	}
	r := AllocateRevenue(orders, tenants)
	if r.Rows[0].TenantID != "t1" || r.Rows[1].TenantID != "t2" || r.Rows[2].TenantID != "t3" {
		t.Fatalf("unexpected order: %s %s %s", r.Rows[0].TenantID, r.Rows[1].TenantID, r.Rows[2].TenantID)
	}
}
