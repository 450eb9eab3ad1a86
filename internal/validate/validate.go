package validate

import (
	"regexp"
	"strings"
)

var (
	rePIN   = regexp.MustCompile(`^[0-9]{4,6}$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// PIN accepts 4-6 digit cashier PINs.
func PIN(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePIN.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (tenant/product/cashier ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

func Mobile(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Amount accepts a non-negative money amount (opening float, price).
func Amount(v float64) bool {
	return v >= 0
}

// Pct accepts a revenue-share percentage in [0,100].
func Pct(v float64) bool {
	return v >= 0 && v <= 100
}

// Qty clamps a line quantity to a sane ceiling. Zero and negative values
// pass through unchanged; they mean "remove the line" to the cart.
func Qty(n int) int {
	if n > 500 {
		return 500
	}
	return n
}
