package inmemory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/modules/core/domain/entities/tenant"
	"github.com/civicore-hq/civicore/modules/core/infrastructure/persistence"
)

type TenantRepository struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]*tenant.Tenant
}

func NewTenantRepository() *TenantRepository {
	return &TenantRepository{tenants: make(map[uuid.UUID]*tenant.Tenant)}
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, persistence.ErrTenantNotFound
	}
	return t, nil
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tenants {
		if strings.EqualFold(t.Domain(), domain) {
			return t, nil
		}
	}
	return nil, persistence.ErrTenantNotFound
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID()] = t
	return t, nil
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID()] = t
	return t, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*tenant.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, t)
	}
	return out, nil
}
