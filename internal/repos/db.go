package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo event data if the DB is empty (idempotent; safe every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedStaff(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Tenants (vendor stalls)
CREATE TABLE IF NOT EXISTS tenants(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact_name TEXT NOT NULL,
  mobile TEXT NOT NULL,
  registration_no TEXT,
  address TEXT,
  revenue_share_pct NUMERIC NOT NULL DEFAULT 70 CHECK (revenue_share_pct >= 0 AND revenue_share_pct <= 100),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_tenants_name_nocase ON tenants(LOWER(name));

-- Product categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL REFERENCES tenants(id) ON DELETE RESTRICT,
  category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_tenant   ON products(tenant_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

-- Events (at most one active)
CREATE TABLE IF NOT EXISTS events(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  venue TEXT,
  starts_on TEXT,
  ends_on TEXT,
  active INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Cashiers & admins
CREATE TABLE IF NOT EXISTS cashiers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  pin_hash TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins(LOWER(email));

-- Orders pushed from registers during sync
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  cashier_id TEXT,
  subtotal NUMERIC NOT NULL,
  vat NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  created_at_ms INTEGER NOT NULL,
  received_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_tenant ON orders(tenant_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name       TEXT NOT NULL,
  price      NUMERIC NOT NULL,
  quantity   INTEGER NOT NULL CHECK (quantity >= 1),
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM tenants`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo tenants/categories/products/event")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('food','Food'),
	  ('drinks','Drinks'),
	  ('crafts','Crafts')`)

	tx.MustExec(`INSERT INTO tenants(id,name,contact_name,mobile,revenue_share_pct) VALUES
	  ('t-braai','Braai Brothers','Sipho Dlamini','0821234567',70),
	  ('t-koffie','Koffie Kar','Anna Venter','0837654321',65),
	  ('t-craft','Karoo Crafts','Lebo Mokoena','0849876543',0)`)

	tx.MustExec(`INSERT INTO products(id,tenant_id,category_id,name,price,stock) VALUES
	  ('p-boerie','t-braai','food','Boerewors Roll',55.00,120),
	  ('p-sosatie','t-braai','food','Chicken Sosatie',48.50,80),
	  ('p-flatw','t-koffie','drinks','Flat White',38.00,200),
	  ('p-cortado','t-koffie','drinks','Cortado',35.00,200),
	  ('p-bowl','t-craft','crafts','Carved Bowl',220.00,15)`)

	tx.MustExec(`INSERT INTO events(id,name,venue,active) VALUES
	  ('ev-nightmarket','Summer Night Market','Old Biscuit Mill',1)`)

	return tx.Commit()
}

// seedStaff ensures demo cashiers and one admin exist (idempotent).
func seedStaff(db *sqlx.DB) error {
	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	cashiers := []struct{ ID, Name, Pin string }{
		{"1001", "Thandi", "4821"},
		{"1002", "Pieter", "9035"},
	}
	for _, c := range cashiers {
		if _, err := tx.Exec(`
			INSERT INTO cashiers(id,name,pin_hash)
			VALUES(?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, c.ID, c.Name, hash(c.Pin)); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO admins(id,email,name,password_hash)
		VALUES('a-admin','admin@festpos.test','Organizer',?)
		ON CONFLICT(email) DO NOTHING
	`, hash("Passw0rd!")); err != nil {
		return err
	}

	return tx.Commit()
}
