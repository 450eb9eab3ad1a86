package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"festpos/internal/config"
	"festpos/internal/events"
	"festpos/internal/http/handlers"
	applog "festpos/internal/log"
	"festpos/internal/pos"
	"festpos/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Register + local order snapshot. Hydration runs in the background;
	// every screen is held back until it finishes.
	reg := pos.NewRegister(pos.NewFileStore(cfg.DataDir))
	go reg.Hydrate()

	pub := events.NewPublisher(cfg.RedisAddr)
	defer func() { _ = pub.Close() }()

	deps := handlers.NewDeps(db, reg, pub)
	if err := deps.Catalog.Refresh(); err != nil {
		log.Fatal(err)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))
	// CSRF covers the server-rendered forms; the JSON API is same-process.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	hydrated := handlers.RequireHydrated(reg)
	shift := handlers.RequireShift(reg)
	admin := handlers.RequireAdmin(reg)

	// ---------- Pages ----------
	app.Get("/login", deps.SessionHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.SessionHandler.AdminLogin)
	app.Post("/logout", deps.SessionHandler.Logout)
	app.Get("/receipt", hydrated, shift, deps.PosHandler.Receipt)
	app.Get("/admin/report", hydrated, admin, deps.AdminHandler.ReportPage)

	// ---------- API ----------
	api := app.Group("/api/v1", hydrated)
	api.Get("/session", deps.SessionHandler.Status)
	api.Post("/shift", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.shift.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	}), deps.SessionHandler.StartShift)
	api.Delete("/shift", shift, deps.SessionHandler.EndShift)

	api.Get("/tenants", shift, deps.PosHandler.Tenants)
	api.Post("/tenant", shift, deps.PosHandler.SelectTenant)
	api.Delete("/tenant", shift, deps.PosHandler.ResetTenant)
	api.Get("/products", shift, deps.PosHandler.Products)
	api.Get("/categories", shift, deps.AdminHandler.ListCategories)

	api.Get("/cart", shift, deps.PosHandler.CartView)
	api.Post("/cart/items", shift, deps.PosHandler.AddItem)
	api.Put("/cart/items/:id", shift, deps.PosHandler.UpdateItem)
	api.Delete("/cart/items/:id", shift, deps.PosHandler.RemoveItem)
	api.Delete("/cart", shift, deps.PosHandler.ClearCart)

	api.Post("/orders", shift, deps.PosHandler.Complete)
	api.Get("/orders", shift, deps.PosHandler.Orders)
	api.Post("/orders/sync", shift, deps.PosHandler.SyncOrders)
	api.Post("/reporting-done", shift, deps.PosHandler.ReportingDone)
	api.Post("/shift/reset", shift, deps.PosHandler.ResetShiftData)

	// ---------- Admin API ----------
	adminAPI := api.Group("/admin", admin)
	adminAPI.Get("/report", deps.AdminHandler.Report)
	adminAPI.Post("/tenants", deps.AdminHandler.CreateTenant)
	adminAPI.Put("/tenants/:id", deps.AdminHandler.UpdateTenant)
	adminAPI.Get("/products", deps.AdminHandler.ListProducts)
	adminAPI.Post("/products", deps.AdminHandler.CreateProduct)
	adminAPI.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	adminAPI.Post("/products/:id/stock", deps.AdminHandler.AdjustStock)
	adminAPI.Get("/cashiers", deps.AdminHandler.ListCashiers)
	adminAPI.Post("/cashiers", deps.AdminHandler.CreateCashier)
	adminAPI.Put("/cashiers/:id", deps.AdminHandler.UpdateCashier)
	adminAPI.Get("/categories", deps.AdminHandler.ListCategories)
	adminAPI.Get("/events", deps.AdminHandler.ListEvents)
	adminAPI.Post("/events", deps.AdminHandler.CreateEvent)
	adminAPI.Post("/events/:id/activate", deps.AdminHandler.ActivateEvent)
	adminAPI.Get("/orders", deps.AdminHandler.ListSyncedOrders)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true, "hydrated": reg.Hydrated()}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
