package repos

import (
	"festpos/internal/domain"

	"github.com/jmoiron/sqlx"
)

// StaffRepo covers both cashier and admin identities.
type StaffRepo struct{ DB *sqlx.DB }

func NewStaffRepo(db *sqlx.DB) *StaffRepo { return &StaffRepo{DB: db} }

func (r *StaffRepo) CashierByID(id string) (*domain.Cashier, error) {
	var c domain.Cashier
	err := r.DB.Get(&c, `SELECT id,name,pin_hash,active FROM cashiers WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *StaffRepo) ListCashiers() ([]domain.Cashier, error) {
	var out []domain.Cashier
	err := r.DB.Select(&out, `SELECT id,name,pin_hash,active FROM cashiers ORDER BY name`)
	return out, err
}

func (r *StaffRepo) CreateCashier(c domain.Cashier) error {
	_, err := r.DB.Exec(`
	  INSERT INTO cashiers(id,name,pin_hash,active) VALUES(?,?,?,?)
	`, c.ID, c.Name, c.PinHash, c.Active)
	return err
}

func (r *StaffRepo) UpdateCashier(c domain.Cashier) error {
	_, err := r.DB.Exec(`
	  UPDATE cashiers SET name=?, pin_hash=?, active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, c.Name, c.PinHash, c.Active, c.ID)
	return err
}

func (r *StaffRepo) AdminByEmail(email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.Get(&a, `SELECT id,email,name,password_hash FROM admins WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
