package handlers

import (
	"festpos/internal/events"
	"festpos/internal/pos"
	"festpos/internal/repos"
	"festpos/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	SessionHandler *SessionHandler
	PosHandler     *PosHandler
	AdminHandler   *AdminHandler

	Catalog *services.CatalogService
}

func NewDeps(db *sqlx.DB, reg *pos.Register, pub *events.Publisher) *Deps {
	tenantRepo := repos.NewTenantRepo(db)
	productRepo := repos.NewProductRepo(db)
	categoryRepo := repos.NewCategoryRepo(db)
	staffRepo := repos.NewStaffRepo(db)
	eventRepo := repos.NewEventRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := &services.AuthService{Staff: staffRepo}
	catalogSvc := services.NewCatalogService(tenantRepo, productRepo, reg)
	syncSvc := services.NewSyncService(orderRepo, reg, pub)

	return &Deps{
		SessionHandler: &SessionHandler{Auth: authSvc, Reg: reg},
		PosHandler:     &PosHandler{Reg: reg, Sync: syncSvc},
		AdminHandler: &AdminHandler{
			Tenants:    tenantRepo,
			Products:   productRepo,
			Categories: categoryRepo,
			Staff:      staffRepo,
			Events:     eventRepo,
			Orders:     orderRepo,
			Reg:        reg,
			Catalog:    catalogSvc,
		},
		Catalog: catalogSvc,
	}
}
