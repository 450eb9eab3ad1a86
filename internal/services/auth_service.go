package services

import (
	"errors"

	"festpos/internal/domain"
	"festpos/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCreds is the only failure callers see; whether the id, PIN, email
// or password was wrong is deliberately not distinguished.
var ErrBadCreds = errors.New("invalid credentials")

type AuthService struct {
	Staff *repos.StaffRepo
}

func (s *AuthService) CashierLogin(cashierID, pin string) (*domain.Cashier, error) {
	c, err := s.Staff.CashierByID(cashierID)
	if err != nil || !c.Active {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PinHash), []byte(pin)) != nil {
		return nil, ErrBadCreds
	}
	return c, nil
}

func (s *AuthService) AdminLogin(email, password string) (*domain.Admin, error) {
	a, err := s.Staff.AdminByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return a, nil
}
