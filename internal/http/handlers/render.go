package handlers

import (
	"festpos/internal/pos"

	"github.com/gofiber/fiber/v2"
)

// render injects whoever is operating the register into every page.
func render(c *fiber.Ctx, reg *pos.Register, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if cashier, ok := reg.ActiveCashier(); ok {
		data["Cashier"] = cashier
	}
	if admin, ok := reg.ActiveAdmin(); ok {
		data["Admin"] = admin
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
