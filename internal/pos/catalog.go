package pos

import "festpos/internal/domain"

// Catalog is a read cache of the backend's tenant and product tables. It is
// replaced wholesale on refresh and never mutated in place.
type Catalog struct {
	tenants  []domain.Tenant
	products []domain.Product

	tenantByID  map[string]domain.Tenant
	productByID map[string]domain.Product
}

func (c *Catalog) Replace(tenants []domain.Tenant, products []domain.Product) {
	c.tenants = tenants
	c.products = products
	c.tenantByID = make(map[string]domain.Tenant, len(tenants))
	for _, t := range tenants {
		c.tenantByID[t.ID] = t
	}
	c.productByID = make(map[string]domain.Product, len(products))
	for _, p := range products {
		c.productByID[p.ID] = p
	}
}

func (c *Catalog) Tenant(id string) (domain.Tenant, bool) {
	t, ok := c.tenantByID[id]
	return t, ok
}

func (c *Catalog) Product(id string) (domain.Product, bool) {
	p, ok := c.productByID[id]
	return p, ok
}

func (c *Catalog) Tenants() []domain.Tenant {
	out := make([]domain.Tenant, len(c.tenants))
	copy(out, c.tenants)
	return out
}

func (c *Catalog) ProductsByTenant(tenantID string) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.TenantID == tenantID && p.Active {
			out = append(out, p)
		}
	}
	return out
}
