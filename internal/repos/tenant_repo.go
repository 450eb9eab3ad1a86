package repos

import (
	"festpos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TenantRepo struct{ db *sqlx.DB }

func NewTenantRepo(db *sqlx.DB) *TenantRepo { return &TenantRepo{db: db} }

func (r *TenantRepo) List() ([]domain.Tenant, error) {
	var out []domain.Tenant
	err := r.db.Select(&out, `
	  SELECT
	    id, name, contact_name, mobile,
	    COALESCE(registration_no,'') AS registration_no,
	    COALESCE(address,'') AS address,
	    revenue_share_pct, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM tenants
	  ORDER BY name
	`)
	return out, err
}

func (r *TenantRepo) Get(id string) (domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.Get(&t, `
	  SELECT
	    id, name, contact_name, mobile,
	    COALESCE(registration_no,'') AS registration_no,
	    COALESCE(address,'') AS address,
	    revenue_share_pct, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM tenants
	  WHERE id = ?
	`, id)
	return t, err
}

func (r *TenantRepo) Create(t domain.Tenant) error {
	_, err := r.db.Exec(`
	  INSERT INTO tenants(id, name, contact_name, mobile, registration_no, address, revenue_share_pct)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.ContactName, t.Mobile, t.RegistrationNo, t.Address, t.RevenueSharePct)
	return err
}

func (r *TenantRepo) Update(t domain.Tenant) error {
	_, err := r.db.Exec(`
	  UPDATE tenants
	  SET name = ?, contact_name = ?, mobile = ?, registration_no = ?, address = ?,
	      revenue_share_pct = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, t.Name, t.ContactName, t.Mobile, t.RegistrationNo, t.Address, t.RevenueSharePct, t.ID)
	return err
}
