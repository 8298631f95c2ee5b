package place

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Place is a registered venue. The natural key is the name, unique within a
// tenant.
type Place struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	name         string
	address      string
	description  string
	streetNumber string
	postalCode   string
	city         string
	country      string
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Place)

func WithID(id uuid.UUID) Option {
	return func(p *Place) {
		p.id = id
	}
}

func WithAddress(address, streetNumber, postalCode, city, country string) Option {
	return func(p *Place) {
		p.address = address
		p.streetNumber = streetNumber
		p.postalCode = postalCode
		p.city = city
		p.country = country
	}
}

func WithDescription(description string) Option {
	return func(p *Place) {
		p.description = description
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(p *Place) {
		p.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(p *Place) {
		p.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, name string, opts ...Option) *Place {
	p := &Place{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Place) ID() uuid.UUID        { return p.id }
func (p *Place) TenantID() uuid.UUID  { return p.tenantID }
func (p *Place) Name() string         { return p.name }
func (p *Place) Address() string      { return p.address }
func (p *Place) Description() string  { return p.description }
func (p *Place) StreetNumber() string { return p.streetNumber }
func (p *Place) PostalCode() string   { return p.postalCode }
func (p *Place) City() string         { return p.city }
func (p *Place) Country() string      { return p.country }
func (p *Place) CreatedAt() time.Time { return p.createdAt }
func (p *Place) UpdatedAt() time.Time { return p.updatedAt }
