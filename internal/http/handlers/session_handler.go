package handlers

import (
	"errors"

	applog "festpos/internal/log"
	"festpos/internal/pos"
	"festpos/internal/services"
	"festpos/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	Auth *services.AuthService
	Reg  *pos.Register
}

type startShiftReq struct {
	CashierID    string  `json:"cashierId"`
	PIN          string  `json:"pin"`
	OpeningFloat float64 `json:"openingFloat"`
}

// StartShift handles POST /api/v1/shift: PIN login plus the starting float.
func (h *SessionHandler) StartShift(c *fiber.Ctx) error {
	var req startShiftReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	pin, ok := validate.PIN(req.PIN)
	if !ok {
		applog.Security(c, "shift.login.fail", map[string]any{"cashier_id": req.CashierID, "reason": "bad_pin_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if !validate.Amount(req.OpeningFloat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "opening float must not be negative"})
	}

	cashier, err := h.Auth.CashierLogin(req.CashierID, pin)
	if err != nil {
		applog.Security(c, "shift.login.fail", map[string]any{"cashier_id": req.CashierID})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if err := h.Reg.StartShift(*cashier, req.OpeningFloat); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	applog.Audit(c, "shift.start", map[string]any{"cashier_id": cashier.ID, "opening_float": req.OpeningFloat})
	return c.JSON(fiber.Map{"cashier": cashier, "openingFloat": req.OpeningFloat})
}

// EndShift handles DELETE /api/v1/shift. The order history stays in place;
// only the session, cart and tenant selection are dropped.
func (h *SessionHandler) EndShift(c *fiber.Ctx) error {
	cashier, _ := h.Reg.ActiveCashier()
	h.Reg.EndSession()
	applog.Audit(c, "shift.end", map[string]any{"cashier_id": cashier.ID})
	return c.JSON(fiber.Map{"ok": true})
}

// Status handles GET /api/v1/session.
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	resp := fiber.Map{"state": h.Reg.SessionState().String()}
	if cashier, ok := h.Reg.ActiveCashier(); ok {
		resp["cashier"] = cashier
		resp["openingFloat"] = h.Reg.OpeningFloat()
		resp["activeTenantId"] = h.Reg.ActiveTenantID()
	}
	if admin, ok := h.Reg.ActiveAdmin(); ok {
		resp["admin"] = admin
	}
	return c.JSON(resp)
}

func (h *SessionHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, h.Reg, "login", fiber.Map{"Err": ""})
}

// AdminLogin handles the POST /login form for the organizer pages.
func (h *SessionHandler) AdminLogin(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "admin.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	admin, err := h.Auth.AdminLogin(email, c.FormValue("password"))
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	if err := h.Reg.StartAdmin(*admin); err != nil {
		if errors.Is(err, pos.ErrSessionActive) {
			return c.Status(fiber.StatusConflict).Render("login", fiber.Map{"Err": "Another session is active on this register"})
		}
		return c.Status(fiber.StatusInternalServerError).Render("login", fiber.Map{"Err": "Something went wrong"})
	}

	applog.Audit(c, "admin.login.success", map[string]any{"email": email})
	return c.Redirect("/admin/report")
}

func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.Reg.EndSession()
	applog.Audit(c, "session.logout", nil)
	return c.Redirect("/login")
}
