package pos

import (
	"errors"
	"time"

	"festpos/internal/domain"
)

type SessionState int

const (
	LoggedOut SessionState = iota
	CashierShiftActive
	AdminActive
)

func (s SessionState) String() string {
	switch s {
	case CashierShiftActive:
		return "shift"
	case AdminActive:
		return "admin"
	default:
		return "logged_out"
	}
}

var (
	ErrSessionActive = errors.New("a session is already active")
	ErrNoShift       = errors.New("no cashier shift is active")
)

// Session holds who is currently operating the register: nobody, one
// cashier shift, or one admin. The active-tenant selection is a substate of
// a cashier shift; resetting it does not end the shift.
type Session struct {
	state          SessionState
	cashier        domain.Cashier
	openingFloat   float64
	shiftStartedAt time.Time
	admin          domain.Admin
	activeTenantID string
}

// StartShift transitions LoggedOut -> CashierShiftActive. Credentials are
// verified by the caller; the session only records the outcome.
func (s *Session) StartShift(c domain.Cashier, openingFloat float64) error {
	if s.state != LoggedOut {
		return ErrSessionActive
	}
	s.state = CashierShiftActive
	s.cashier = c
	s.openingFloat = openingFloat
	s.shiftStartedAt = time.Now()
	return nil
}

func (s *Session) StartAdmin(a domain.Admin) error {
	if s.state != LoggedOut {
		return ErrSessionActive
	}
	s.state = AdminActive
	s.admin = a
	return nil
}

// End returns to LoggedOut from any state and drops the tenant selection.
func (s *Session) End() {
	*s = Session{}
}

// SelectTenant points the register at one tenant's catalog. Only valid
// during a shift.
func (s *Session) SelectTenant(tenantID string) error {
	if s.state != CashierShiftActive {
		return ErrNoShift
	}
	s.activeTenantID = tenantID
	return nil
}

// ResetTenant returns to the tenant-selection screen without ending the
// shift.
func (s *Session) ResetTenant() {
	s.activeTenantID = ""
}

func (s *Session) State() SessionState { return s.state }

func (s *Session) ActiveTenantID() string { return s.activeTenantID }

func (s *Session) Cashier() (domain.Cashier, bool) {
	return s.cashier, s.state == CashierShiftActive
}

func (s *Session) Admin() (domain.Admin, bool) {
	return s.admin, s.state == AdminActive
}

func (s *Session) OpeningFloat() float64 { return s.openingFloat }

func (s *Session) ShiftStartedAt() time.Time { return s.shiftStartedAt }
