package services_test

import (
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"festpos/internal/repos"
	"festpos/internal/services"
)

func TestSeededPinsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT pin_hash FROM cashiers`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no cashiers seeded")
	}
	for _, h := range hashes {
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
	}
}

func TestCashierLogin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := &services.AuthService{Staff: repos.NewStaffRepo(db)}

	c, err := svc.CashierLogin("1001", "4821")
	if err != nil {
		t.Fatalf("expected login success: %v", err)
	}
	if c.ID != "1001" || c.Name == "" {
		t.Fatalf("bad cashier: %+v", c)
	}

	if _, err := svc.CashierLogin("1001", "0000"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong pin: want ErrBadCreds, got %v", err)
	}
	if _, err := svc.CashierLogin("9999", "4821"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown cashier: want ErrBadCreds, got %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := &services.AuthService{Staff: repos.NewStaffRepo(db)}

	a, err := svc.AdminLogin("admin@festpos.test", "Passw0rd!")
	if err != nil {
		t.Fatalf("expected login success: %v", err)
	}
	if a.Email != "admin@festpos.test" {
		t.Fatalf("bad admin: %+v", a)
	}

	if _, err := svc.AdminLogin("admin@festpos.test", "wrong"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong password: want ErrBadCreds, got %v", err)
	}
	if _, err := svc.AdminLogin("ghost@festpos.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown admin: want ErrBadCreds, got %v", err)
	}
}
