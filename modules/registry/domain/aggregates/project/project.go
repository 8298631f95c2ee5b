package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a long-running initiative. The natural key is the name, unique
// within a tenant. The responsible is free text: hand-kept books name people
// who are not always registered members.
type Project struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	name         string
	responsible  string
	startDate    *time.Time
	endDate      *time.Time
	recurring    bool
	placeID      *uuid.UUID
	placeName    string
	description  string
	materials    string
	stakeholders string
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Project)

func WithID(id uuid.UUID) Option {
	return func(p *Project) {
		p.id = id
	}
}

func WithResponsible(responsible string) Option {
	return func(p *Project) {
		p.responsible = responsible
	}
}

func WithStartDate(startDate *time.Time) Option {
	return func(p *Project) {
		p.startDate = startDate
	}
}

func WithEndDate(endDate *time.Time) Option {
	return func(p *Project) {
		p.endDate = endDate
	}
}

func WithRecurring(recurring bool) Option {
	return func(p *Project) {
		p.recurring = recurring
	}
}

func WithPlaceID(placeID *uuid.UUID) Option {
	return func(p *Project) {
		p.placeID = placeID
	}
}

func WithPlaceName(placeName string) Option {
	return func(p *Project) {
		p.placeName = placeName
	}
}

func WithDescription(description string) Option {
	return func(p *Project) {
		p.description = description
	}
}

func WithMaterials(materials string) Option {
	return func(p *Project) {
		p.materials = materials
	}
}

func WithStakeholders(stakeholders string) Option {
	return func(p *Project) {
		p.stakeholders = stakeholders
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(p *Project) {
		p.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(p *Project) {
		p.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, name string, opts ...Option) *Project {
	p := &Project{
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

func (p *Project) ID() uuid.UUID         { return p.id }
func (p *Project) TenantID() uuid.UUID   { return p.tenantID }
func (p *Project) Name() string          { return p.name }
func (p *Project) Responsible() string   { return p.responsible }
func (p *Project) StartDate() *time.Time { return p.startDate }
func (p *Project) EndDate() *time.Time   { return p.endDate }
func (p *Project) Recurring() bool       { return p.recurring }
func (p *Project) PlaceID() *uuid.UUID   { return p.placeID }
func (p *Project) PlaceName() string     { return p.placeName }
func (p *Project) Description() string   { return p.description }
func (p *Project) Materials() string     { return p.materials }
func (p *Project) Stakeholders() string  { return p.stakeholders }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }
