package pos

import (
	"errors"
	"testing"

	"festpos/internal/domain"
)

func TestSessionStates(t *testing.T) {
	var s Session
	if s.State() != LoggedOut {
		t.Fatal("fresh session should be logged out")
	}

	cashier := domain.Cashier{ID: "1001", Name: "Thandi"}
	if err := s.StartShift(cashier, 500); err != nil {
		t.Fatal(err)
	}
	if s.State() != CashierShiftActive {
		t.Fatal("shift should be active")
	}
	if got, ok := s.Cashier(); !ok || got.ID != "1001" {
		t.Fatalf("cashier not recorded: %+v", got)
	}
	if s.OpeningFloat() != 500 {
		t.Fatalf("opening float: %v", s.OpeningFloat())
	}

	// exactly one session at a time
	if err := s.StartAdmin(domain.Admin{ID: "a1"}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("want ErrSessionActive, got %v", err)
	}
	if err := s.StartShift(cashier, 100); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("want ErrSessionActive, got %v", err)
	}

	s.End()
	if s.State() != LoggedOut {
		t.Fatal("end should return to logged out")
	}
	if err := s.StartAdmin(domain.Admin{ID: "a1", Email: "x@y.test"}); err != nil {
		t.Fatal(err)
	}
	if s.State() != AdminActive {
		t.Fatal("admin session should be active")
	}
}

func TestTenantSelectionIsShiftSubstate(t *testing.T) {
	var s Session
	if err := s.SelectTenant("t1"); !errors.Is(err, ErrNoShift) {
		t.Fatalf("want ErrNoShift, got %v", err)
	}

	if err := s.StartShift(domain.Cashier{ID: "1001"}, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectTenant("t1"); err != nil {
		t.Fatal(err)
	}
	if s.ActiveTenantID() != "t1" {
		t.Fatal("tenant not selected")
	}

	// reset to tenant selection keeps the shift
	s.ResetTenant()
	if s.ActiveTenantID() != "" {
		t.Fatal("tenant should be cleared")
	}
	if s.State() != CashierShiftActive {
		t.Fatal("reset must not end the shift")
	}

	// ending the shift drops the selection
	if err := s.SelectTenant("t2"); err != nil {
		t.Fatal(err)
	}
	s.End()
	if s.ActiveTenantID() != "" {
		t.Fatal("tenant selection must not survive logout")
	}
}
