package handlers

import (
	"strings"

	applog "festpos/internal/log"
	"festpos/internal/pos"

	"github.com/gofiber/fiber/v2"
)

// RequireHydrated holds every request back until the register has finished
// restoring persisted orders, so no screen renders from an empty store.
func RequireHydrated(reg *pos.Register) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !reg.Hydrated() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "register is starting up, retry shortly"})
		}
		return c.Next()
	}
}

// RequireShift gates order-taking behind an active cashier shift.
func RequireShift(reg *pos.Register) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cashier, ok := reg.ActiveCashier()
		if !ok {
			applog.Security(c, "access.denied.shift", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active shift"})
		}
		c.Locals("actor", "cashier:"+cashier.ID)
		return c.Next()
	}
}

// RequireAdmin gates admin surfaces. API calls get a 403; page requests are
// sent back to the login entry point.
func RequireAdmin(reg *pos.Register) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := reg.ActiveAdmin()
		if !ok {
			applog.Security(c, "access.denied.admin", nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin session required"})
			}
			return c.Redirect("/login")
		}
		c.Locals("actor", "admin:"+admin.ID)
		return c.Next()
	}
}
