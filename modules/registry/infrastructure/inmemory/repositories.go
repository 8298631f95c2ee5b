package inmemory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/contact"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/event"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/inventory"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/member"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/place"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/project"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/transaction"
)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

type MemberRepository struct {
	store *store[*member.Member]
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{store: newStore(func(m *member.Member) uuid.UUID { return m.TenantID() })}
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]*member.Member, error) {
	return r.store.all(ctx)
}

func (r *MemberRepository) GetByNumber(ctx context.Context, number string) (*member.Member, error) {
	m, ok, err := r.store.find(ctx, func(m *member.Member) bool { return m.Number() == strings.TrimSpace(number) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, member.ErrNotFound
	}
	return m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) (*member.Member, error) {
	r.store.put(m.ID(), m)
	return m, nil
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) (*member.Member, error) {
	r.store.put(m.ID(), m)
	return m, nil
}

type PlaceRepository struct {
	store *store[*place.Place]
}

func NewPlaceRepository() *PlaceRepository {
	return &PlaceRepository{store: newStore(func(p *place.Place) uuid.UUID { return p.TenantID() })}
}

func (r *PlaceRepository) GetAll(ctx context.Context) ([]*place.Place, error) {
	return r.store.all(ctx)
}

func (r *PlaceRepository) GetByName(ctx context.Context, name string) (*place.Place, error) {
	p, ok, err := r.store.find(ctx, func(p *place.Place) bool { return equalFold(p.Name(), name) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, place.ErrNotFound
	}
	return p, nil
}

func (r *PlaceRepository) Create(ctx context.Context, p *place.Place) (*place.Place, error) {
	r.store.put(p.ID(), p)
	return p, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *place.Place) (*place.Place, error) {
	r.store.put(p.ID(), p)
	return p, nil
}

type ContactRepository struct {
	store *store[*contact.Contact]
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{store: newStore(func(c *contact.Contact) uuid.UUID { return c.TenantID() })}
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	return r.store.all(ctx)
}

func (r *ContactRepository) GetByFullName(ctx context.Context, firstName, lastName string) (*contact.Contact, error) {
	c, ok, err := r.store.find(ctx, func(c *contact.Contact) bool {
		return equalFold(c.FirstName(), firstName) && equalFold(c.LastName(), lastName)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, contact.ErrNotFound
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	r.store.put(c.ID(), c)
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	r.store.put(c.ID(), c)
	return c, nil
}

type InventoryRepository struct {
	store *store[*inventory.Item]
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{store: newStore(func(i *inventory.Item) uuid.UUID { return i.TenantID() })}
}

func (r *InventoryRepository) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	return r.store.all(ctx)
}

func (r *InventoryRepository) GetByName(ctx context.Context, name string) (*inventory.Item, error) {
	i, ok, err := r.store.find(ctx, func(i *inventory.Item) bool { return equalFold(i.Name(), name) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, inventory.ErrNotFound
	}
	return i, nil
}

func (r *InventoryRepository) Create(ctx context.Context, i *inventory.Item) (*inventory.Item, error) {
	r.store.put(i.ID(), i)
	return i, nil
}

func (r *InventoryRepository) Update(ctx context.Context, i *inventory.Item) (*inventory.Item, error) {
	r.store.put(i.ID(), i)
	return i, nil
}

type TransactionRepository struct {
	store *store[*transaction.Transaction]
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{store: newStore(func(t *transaction.Transaction) uuid.UUID { return t.TenantID() })}
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]*transaction.Transaction, error) {
	return r.store.all(ctx)
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	r.store.put(t.ID(), t)
	return t, nil
}

type EventRepository struct {
	store *store[*event.Event]
}

func NewEventRepository() *EventRepository {
	return &EventRepository{store: newStore(func(e *event.Event) uuid.UUID { return e.TenantID() })}
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*event.Event, error) {
	return r.store.all(ctx)
}

func (r *EventRepository) GetByName(ctx context.Context, name string) (*event.Event, error) {
	e, ok, err := r.store.find(ctx, func(e *event.Event) bool { return equalFold(e.Name(), name) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, event.ErrNotFound
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) (*event.Event, error) {
	r.store.put(e.ID(), e)
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) (*event.Event, error) {
	r.store.put(e.ID(), e)
	return e, nil
}

type ProjectRepository struct {
	store *store[*project.Project]
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{store: newStore(func(p *project.Project) uuid.UUID { return p.TenantID() })}
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*project.Project, error) {
	return r.store.all(ctx)
}

func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	p, ok, err := r.store.find(ctx, func(p *project.Project) bool { return equalFold(p.Name(), name) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, project.ErrNotFound
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	r.store.put(p.ID(), p)
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	r.store.put(p.ID(), p)
	return p, nil
}
