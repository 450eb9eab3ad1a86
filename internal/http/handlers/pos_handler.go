package handlers

import (
	"errors"

	applog "festpos/internal/log"
	"festpos/internal/pos"
	"festpos/internal/services"
	"festpos/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// PosHandler exposes the register to the cashier-facing client: tenant
// selection, cart composition, completion, sync and shift reset.
type PosHandler struct {
	Reg  *pos.Register
	Sync *services.SyncService
}

// Tenants handles GET /api/v1/tenants.
func (h *PosHandler) Tenants(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tenants": h.Reg.Tenants()})
}

type selectTenantReq struct {
	TenantID string `json:"tenantId"`
}

// SelectTenant handles POST /api/v1/tenant. Selecting starts a fresh cart.
func (h *PosHandler) SelectTenant(c *fiber.Ctx) error {
	var req selectTenantReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	id, ok := validate.ID(req.TenantID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant id"})
	}
	if err := h.Reg.SelectTenant(id); err != nil {
		if errors.Is(err, pos.ErrUnknownTenant) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown tenant"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Info(c, "tenant.select", map[string]any{"tenant_id": id})
	return c.JSON(fiber.Map{"activeTenantId": id})
}

// ResetTenant handles DELETE /api/v1/tenant: back to tenant selection, cart
// abandoned, shift kept.
func (h *PosHandler) ResetTenant(c *fiber.Ctx) error {
	h.Reg.ResetTenant()
	return c.JSON(fiber.Map{"ok": true})
}

// Products handles GET /api/v1/products for the active tenant.
func (h *PosHandler) Products(c *fiber.Ctx) error {
	tenantID := h.Reg.ActiveTenantID()
	if tenantID == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no tenant selected"})
	}
	return c.JSON(fiber.Map{"tenantId": tenantID, "products": h.Reg.ProductsByTenant(tenantID)})
}

func (h *PosHandler) CartView(c *fiber.Ctx) error {
	return c.JSON(h.Reg.CartView())
}

type addItemReq struct {
	ProductID string `json:"productId"`
}

// AddItem handles POST /api/v1/cart/items. A product from another tenant is
// refused outright and the cart is left untouched.
func (h *PosHandler) AddItem(c *fiber.Ctx) error {
	var req addItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	if err := h.Reg.AddProduct(req.ProductID); err != nil {
		switch {
		case errors.Is(err, pos.ErrTenantMismatch):
			applog.Security(c, "cart.add.tenant_mismatch", map[string]any{"product_id": req.ProductID})
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "product belongs to a different tenant"})
		case errors.Is(err, pos.ErrUnknownProduct):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(h.Reg.CartView())
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/v1/cart/items/:id. Zero or negative removes
// the line; an unknown line is a no-op. Quantities are clamped to a ceiling.
func (h *PosHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	h.Reg.UpdateQuantity(c.Params("id"), validate.Qty(req.Quantity))
	return c.JSON(h.Reg.CartView())
}

func (h *PosHandler) RemoveItem(c *fiber.Ctx) error {
	h.Reg.RemoveProduct(c.Params("id"))
	return c.JSON(h.Reg.CartView())
}

func (h *PosHandler) ClearCart(c *fiber.Ctx) error {
	h.Reg.ClearCart()
	return c.JSON(h.Reg.CartView())
}

// Complete handles POST /api/v1/orders: freeze the cart into an order.
func (h *PosHandler) Complete(c *fiber.Ctx) error {
	o, err := h.Reg.CompleteOrder()
	if err != nil {
		if errors.Is(err, pos.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
		}
		applog.Error(c, "order.complete.fail", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "order.complete", map[string]any{"order_id": o.ID, "tenant_id": o.TenantID, "total": o.Total})
	return c.JSON(o)
}

// Orders handles GET /api/v1/orders: the shift's completed-order history.
func (h *PosHandler) Orders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"orders":        h.Reg.Orders(),
		"reportingDone": h.Reg.ReportingDone(),
		"canReset":      h.Reg.CanResetShift(),
	})
}

// SyncOrders handles POST /api/v1/orders/sync: push unsynced orders to the
// backend and acknowledge the ones that stuck.
func (h *PosHandler) SyncOrders(c *fiber.Ctx) error {
	n, err := h.Sync.Push(c.Context())
	if err != nil {
		applog.Error(c, "orders.sync.partial", err, map[string]any{"synced": n})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"synced": n, "error": "some orders could not be pushed"})
	}
	applog.Audit(c, "orders.sync", map[string]any{"synced": n})
	return c.JSON(fiber.Map{"synced": n})
}

type reportingDoneReq struct {
	Done bool `json:"done"`
}

// ReportingDone handles POST /api/v1/reporting-done: the operator confirms
// end-of-shift reconciliation, unlocking the shift reset.
func (h *PosHandler) ReportingDone(c *fiber.Ctx) error {
	var req reportingDoneReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	h.Reg.SetReportingDone(req.Done)
	applog.Audit(c, "shift.reporting", map[string]any{"done": req.Done})
	return c.JSON(fiber.Map{"reportingDone": req.Done, "canReset": h.Reg.CanResetShift()})
}

// ResetShiftData handles POST /api/v1/shift/reset: clear the order history
// for a fresh shift. Refused while reconciliation is outstanding.
func (h *PosHandler) ResetShiftData(c *fiber.Ctx) error {
	if err := h.Reg.ResetShiftData(); err != nil {
		if errors.Is(err, pos.ErrReportingPending) {
			applog.Security(c, "shift.reset.refused", nil)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "acknowledge end-of-shift reporting first"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "shift.reset", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Receipt renders the last completed order for printing.
func (h *PosHandler) Receipt(c *fiber.Ctx) error {
	o, ok := h.Reg.LastCompleted()
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No completed order yet"})
	}
	tenant, _ := h.Reg.Tenant(o.TenantID)
	return render(c, h.Reg, "receipt", fiber.Map{"Order": o, "Tenant": tenant})
}
