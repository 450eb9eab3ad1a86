package services

import (
	"festpos/internal/pos"
	"festpos/internal/repos"
)

// CatalogService pulls tenant and product reference data from the backend
// into the register's catalog cache. A failed refresh leaves the previous
// cache untouched.
type CatalogService struct {
	Tenants  *repos.TenantRepo
	Products *repos.ProductRepo
	Register *pos.Register
}

func NewCatalogService(tenants *repos.TenantRepo, products *repos.ProductRepo, reg *pos.Register) *CatalogService {
	return &CatalogService{Tenants: tenants, Products: products, Register: reg}
}

func (s *CatalogService) Refresh() error {
	tenants, err := s.Tenants.List()
	if err != nil {
		return err
	}
	products, err := s.Products.List()
	if err != nil {
		return err
	}
	s.Register.ReplaceCatalog(tenants, products)
	return nil
}
