package domain

// Tenant is a vendor/stall participating in the event. RevenueSharePct is
// the percentage of gross revenue the tenant keeps; 0 is a valid configured
// share (the organizer keeps everything).
type Tenant struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	ContactName     string  `db:"contact_name" json:"contactName"`
	Mobile          string  `db:"mobile" json:"mobile"`
	RegistrationNo  string  `db:"registration_no" json:"registrationNo,omitempty"`
	Address         string  `db:"address" json:"address,omitempty"`
	RevenueSharePct float64 `db:"revenue_share_pct" json:"revenueSharePct"`
	CreatedAt       string  `db:"created_at" json:"-"`
	UpdatedAt       string  `db:"updated_at" json:"-"`
}

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"-"`
}

type Product struct {
	ID         string  `db:"id" json:"id"`
	TenantID   string  `db:"tenant_id" json:"tenantId"`
	CategoryID string  `db:"category_id" json:"categoryId"`
	Name       string  `db:"name" json:"name"`
	Price      float64 `db:"price" json:"price"`
	Stock      int     `db:"stock" json:"stock"`
	Active     bool    `db:"active" json:"active"`
	CreatedAt  string  `db:"created_at" json:"-"`
	UpdatedAt  string  `db:"updated_at" json:"-"`
}

// EventInfo describes a festival/market event. At most one event is active
// at a time; exclusivity is enforced by the store, not by callers.
type EventInfo struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Venue     string `db:"venue" json:"venue,omitempty"`
	StartsOn  string `db:"starts_on" json:"startsOn,omitempty"`
	EndsOn    string `db:"ends_on" json:"endsOn,omitempty"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"-"`
}
