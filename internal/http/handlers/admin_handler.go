package handlers

import (
	"festpos/internal/domain"
	applog "festpos/internal/log"
	"festpos/internal/pos"
	"festpos/internal/repos"
	"festpos/internal/services"
	"festpos/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	Tenants    *repos.TenantRepo
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
	Staff      *repos.StaffRepo
	Events     *repos.EventRepo
	Orders     *repos.OrderRepo
	Reg        *pos.Register
	Catalog    *services.CatalogService
}

// ReportPage renders the revenue-split report for the organizer.
func (h *AdminHandler) ReportPage(c *fiber.Ctx) error {
	return render(c, h.Reg, "report", fiber.Map{"Report": h.Reg.RevenueReport()})
}

// Report handles GET /api/v1/admin/report.
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	return c.JSON(h.Reg.RevenueReport())
}

// ---------- tenants ----------

type tenantReq struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ContactName    string `json:"contactName"`
	Mobile         string `json:"mobile"`
	RegistrationNo string `json:"registrationNo"`
	Address        string `json:"address"`
	// Pointer so an omitted share falls back to the default while an
	// explicit 0 stays a configured 0% share.
	RevenueSharePct *float64 `json:"revenueSharePct"`
}

func (r tenantReq) validate() (domain.Tenant, string) {
	name, ok := validate.Name(r.Name)
	if !ok {
		return domain.Tenant{}, "invalid name"
	}
	contact, ok := validate.Name(r.ContactName)
	if !ok {
		return domain.Tenant{}, "invalid contact name"
	}
	mobile, ok := validate.Mobile(r.Mobile)
	if !ok {
		return domain.Tenant{}, "invalid mobile number"
	}
	pct := pos.DefaultTenantSharePct
	if r.RevenueSharePct != nil {
		pct = *r.RevenueSharePct
	}
	if !validate.Pct(pct) {
		return domain.Tenant{}, "revenue share must be between 0 and 100"
	}
	return domain.Tenant{
		ID:              r.ID,
		Name:            name,
		ContactName:     contact,
		Mobile:          mobile,
		RegistrationNo:  r.RegistrationNo,
		Address:         r.Address,
		RevenueSharePct: pct,
	}, ""
}

func (h *AdminHandler) CreateTenant(c *fiber.Ctx) error {
	var req tenantReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	req.ID = id
	t, msg := req.validate()
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	if err := h.Tenants.Create(t); err != nil {
		applog.Error(c, "admin.tenant.create.fail", err, map[string]any{"tenant_id": t.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create tenant"})
	}
	h.refreshCatalog(c)
	applog.Audit(c, "admin.tenant.create", map[string]any{"tenant_id": t.ID})
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *AdminHandler) UpdateTenant(c *fiber.Ctx) error {
	var req tenantReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	req.ID = c.Params("id")
	t, msg := req.validate()
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	if err := h.Tenants.Update(t); err != nil {
		applog.Error(c, "admin.tenant.update.fail", err, map[string]any{"tenant_id": t.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update tenant"})
	}
	h.refreshCatalog(c)
	applog.Audit(c, "admin.tenant.update", map[string]any{"tenant_id": t.ID})
	return c.JSON(t)
}

// ---------- products ----------

type productReq struct {
	ID         string  `json:"id"`
	TenantID   string  `json:"tenantId"`
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	Active     *bool   `json:"active"`
}

// ListProducts handles GET /api/v1/admin/products. An optional ?tenant=
// filter narrows the list to that tenant's active products.
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	var (
		products []domain.Product
		err      error
	)
	if tenantID := c.Query("tenant"); tenantID != "" {
		products, err = h.Products.ListByTenant(tenantID)
	} else {
		products, err = h.Products.List()
	}
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	if !validate.Amount(req.Price) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must not be negative"})
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	p := domain.Product{
		ID:         id,
		TenantID:   req.TenantID,
		CategoryID: req.CategoryID,
		Name:       name,
		Price:      req.Price,
		Stock:      req.Stock,
		Active:     active,
	}
	if err := h.Products.Create(p); err != nil {
		applog.Error(c, "admin.product.create.fail", err, map[string]any{"product_id": p.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create product"})
	}
	h.refreshCatalog(c)
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID, "tenant_id": p.TenantID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	existing, err := h.Products.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	if !validate.Amount(req.Price) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must not be negative"})
	}
	existing.Name = name
	existing.Price = req.Price
	existing.CategoryID = req.CategoryID
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if err := h.Products.Update(existing); err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product_id": existing.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update product"})
	}
	h.refreshCatalog(c)
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": existing.ID})
	return c.JSON(existing)
}

type stockReq struct {
	Delta int `json:"delta"`
}

// AdjustStock applies a signed stock delta; the store refuses going below
// zero atomically, so concurrent registers cannot oversell.
func (h *AdminHandler) AdjustStock(c *fiber.Ctx) error {
	var req stockReq
	if err := c.BodyParser(&req); err != nil || req.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "delta must be a non-zero integer"})
	}
	id := c.Params("id")
	if err := h.Products.AdjustStock(id, req.Delta); err != nil {
		applog.Security(c, "admin.stock.adjust.refused", map[string]any{"product_id": id, "delta": req.Delta})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "stock adjustment refused"})
	}
	h.refreshCatalog(c)
	applog.Audit(c, "admin.stock.adjust", map[string]any{"product_id": id, "delta": req.Delta})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- cashiers ----------

type cashierReq struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PIN    string `json:"pin"`
	Active *bool  `json:"active"`
}

func (h *AdminHandler) ListCashiers(c *fiber.Ctx) error {
	cashiers, err := h.Staff.ListCashiers()
	if err != nil {
		applog.Error(c, "admin.cashiers.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load cashiers"})
	}
	return c.JSON(fiber.Map{"cashiers": cashiers})
}

func (h *AdminHandler) CreateCashier(c *fiber.Ctx) error {
	var req cashierReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	pin, ok := validate.PIN(req.PIN)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN must be 4-6 digits"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), 12)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create cashier"})
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	cashier := domain.Cashier{ID: id, Name: name, PinHash: string(hash), Active: active}
	if err := h.Staff.CreateCashier(cashier); err != nil {
		applog.Error(c, "admin.cashier.create.fail", err, map[string]any{"cashier_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create cashier"})
	}
	applog.Audit(c, "admin.cashier.create", map[string]any{"cashier_id": id})
	return c.Status(fiber.StatusCreated).JSON(cashier)
}

func (h *AdminHandler) UpdateCashier(c *fiber.Ctx) error {
	var req cashierReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	existing, err := h.Staff.CashierByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown cashier"})
	}
	if req.Name != "" {
		name, ok := validate.Name(req.Name)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
		}
		existing.Name = name
	}
	if req.PIN != "" {
		pin, ok := validate.PIN(req.PIN)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN must be 4-6 digits"})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), 12)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update cashier"})
		}
		existing.PinHash = string(hash)
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if err := h.Staff.UpdateCashier(*existing); err != nil {
		applog.Error(c, "admin.cashier.update.fail", err, map[string]any{"cashier_id": existing.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update cashier"})
	}
	applog.Audit(c, "admin.cashier.update", map[string]any{"cashier_id": existing.ID})
	return c.JSON(existing)
}

// ---------- categories / events / synced orders ----------

func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Categories.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *AdminHandler) ListEvents(c *fiber.Ctx) error {
	evs, err := h.Events.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load events"})
	}
	return c.JSON(fiber.Map{"events": evs})
}

type eventReq struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Venue    string `json:"venue"`
	StartsOn string `json:"startsOn"`
	EndsOn   string `json:"endsOn"`
}

func (h *AdminHandler) CreateEvent(c *fiber.Ctx) error {
	var req eventReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request"})
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	e := domain.EventInfo{ID: id, Name: name, Venue: req.Venue, StartsOn: req.StartsOn, EndsOn: req.EndsOn}
	if err := h.Events.Create(e); err != nil {
		applog.Error(c, "admin.event.create.fail", err, map[string]any{"event_id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not create event"})
	}
	applog.Audit(c, "admin.event.create", map[string]any{"event_id": id})
	return c.Status(fiber.StatusCreated).JSON(e)
}

// ActivateEvent makes the given event the single active one.
func (h *AdminHandler) ActivateEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Events.SetActive(id); err != nil {
		applog.Error(c, "admin.event.activate.fail", err, map[string]any{"event_id": id})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown event"})
	}
	applog.Audit(c, "admin.event.activate", map[string]any{"event_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// ListSyncedOrders shows what has actually reached the backend store.
func (h *AdminHandler) ListSyncedOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// refreshCatalog re-pulls reference data after an admin write so cashiers
// sell from the current catalog. Failure is logged, not surfaced: the old
// cache stays valid.
func (h *AdminHandler) refreshCatalog(c *fiber.Ctx) {
	if err := h.Catalog.Refresh(); err != nil {
		applog.Error(c, "catalog.refresh.fail", err, nil)
	}
}
