package pos

import (
	"sort"

	"festpos/internal/domain"
)

// DefaultTenantSharePct applies where no valid share is configured: orders
// for tenants missing from the catalog, and tenant records carrying an
// out-of-range value. A configured 0 is honored as-is.
const DefaultTenantSharePct = 70.0

type TenantRevenue struct {
	TenantID       string  `json:"tenantId"`
	TenantName     string  `json:"tenantName"`
	SharePct       float64 `json:"sharePct"`
	OrderCount     int     `json:"orderCount"`
	Gross          float64 `json:"gross"`
	TenantShare    float64 `json:"tenantShare"`
	OrganizerShare float64 `json:"organizerShare"`
}

type RevenueReport struct {
	Rows           []TenantRevenue `json:"rows"`
	OrderCount     int             `json:"orderCount"`
	Gross          float64         `json:"gross"`
	TenantShare    float64         `json:"tenantShare"`
	OrganizerShare float64         `json:"organizerShare"`
	VAT            float64         `json:"vat"`
}

// AllocateRevenue derives the tenant/organizer split from the order history.
// Pure function over its inputs: safe to recompute on every read. Rows are
// sorted by gross revenue descending; ties keep tenant-list order.
func AllocateRevenue(orders []domain.Order, tenants []domain.Tenant) RevenueReport {
	index := make(map[string]int, len(tenants))
	rows := make([]TenantRevenue, 0, len(tenants))
	for _, t := range tenants {
		pct := t.RevenueSharePct
		if pct < 0 || pct > 100 {
			pct = DefaultTenantSharePct
		}
		index[t.ID] = len(rows)
		rows = append(rows, TenantRevenue{TenantID: t.ID, TenantName: t.Name, SharePct: pct})
	}

	var report RevenueReport
	for _, o := range orders {
		i, ok := index[o.TenantID]
		if !ok {
			// Order for a tenant missing from the catalog (e.g. deleted
			// after the sale). Report it under its id at the default split.
			i = len(rows)
			index[o.TenantID] = i
			rows = append(rows, TenantRevenue{TenantID: o.TenantID, TenantName: o.TenantID, SharePct: DefaultTenantSharePct})
		}
		rows[i].OrderCount++
		rows[i].Gross += o.Total
		report.VAT += o.VAT
	}

	for i := range rows {
		rows[i].Gross = round2(rows[i].Gross)
		rows[i].TenantShare = round2(rows[i].Gross * rows[i].SharePct / 100)
		rows[i].OrganizerShare = round2(rows[i].Gross - rows[i].TenantShare)

		report.OrderCount += rows[i].OrderCount
		report.Gross += rows[i].Gross
		report.TenantShare += rows[i].TenantShare
		report.OrganizerShare += rows[i].OrganizerShare
	}
	report.Gross = round2(report.Gross)
	report.TenantShare = round2(report.TenantShare)
	report.OrganizerShare = round2(report.OrganizerShare)
	report.VAT = round2(report.VAT)

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Gross > rows[b].Gross })
	report.Rows = rows
	return report
}
