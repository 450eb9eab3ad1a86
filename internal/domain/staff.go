package domain

// Cashier logs in with a numeric id and PIN; only the bcrypt hash of the
// PIN is ever stored.
type Cashier struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	PinHash string `db:"pin_hash" json:"-"`
	Active  bool   `db:"active" json:"active"`
}

type Admin struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
}
