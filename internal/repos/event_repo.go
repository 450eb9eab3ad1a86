package repos

import (
	"fmt"

	"festpos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EventRepo struct{ db *sqlx.DB }

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) List() ([]domain.EventInfo, error) {
	var out []domain.EventInfo
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(venue,'') AS venue,
	         COALESCE(starts_on,'') AS starts_on, COALESCE(ends_on,'') AS ends_on,
	         active, created_at
	  FROM events
	  ORDER BY created_at DESC
	`)
	return out, err
}

func (r *EventRepo) Create(e domain.EventInfo) error {
	_, err := r.db.Exec(`
	  INSERT INTO events(id, name, venue, starts_on, ends_on, active)
	  VALUES(?, ?, ?, ?, ?, 0)
	`, e.ID, e.Name, e.Venue, e.StartsOn, e.EndsOn)
	return err
}

// SetActive makes exactly one event active. Deactivate-all plus activate-one
// run in a single transaction so exclusivity holds.
func (r *EventRepo) SetActive(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE events SET active = 0 WHERE active = 1`); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE events SET active = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no such event: %s", id)
	}
	return tx.Commit()
}
