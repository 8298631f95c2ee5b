package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is an activity run by the association. Events are append-only but
// matched by name within a tenant so re-importing the same workbook does not
// duplicate them.
//
// The place is kept twice: a resolved link when the named place exists in
// the registry, and the raw text otherwise. Unresolved references never
// block the event.
type Event struct {
	id                  uuid.UUID
	tenantID            uuid.UUID
	name                string
	startsAt            time.Time
	duration            *time.Duration
	placeID             *uuid.UUID
	placeName           string
	placeAddress        string
	responsibleMemberID *uuid.UUID
	projectID           *uuid.UUID
	note                string
	collaborators       string
	observations        string
	createdAt           time.Time
	updatedAt           time.Time
}

type Option func(*Event)

func WithID(id uuid.UUID) Option {
	return func(e *Event) {
		e.id = id
	}
}

func WithDuration(duration *time.Duration) Option {
	return func(e *Event) {
		e.duration = duration
	}
}

func WithPlaceID(placeID *uuid.UUID) Option {
	return func(e *Event) {
		e.placeID = placeID
	}
}

func WithPlaceName(placeName string) Option {
	return func(e *Event) {
		e.placeName = placeName
	}
}

func WithPlaceAddress(placeAddress string) Option {
	return func(e *Event) {
		e.placeAddress = placeAddress
	}
}

func WithResponsibleMemberID(memberID *uuid.UUID) Option {
	return func(e *Event) {
		e.responsibleMemberID = memberID
	}
}

func WithProjectID(projectID *uuid.UUID) Option {
	return func(e *Event) {
		e.projectID = projectID
	}
}

func WithNote(note string) Option {
	return func(e *Event) {
		e.note = note
	}
}

func WithCollaborators(collaborators string) Option {
	return func(e *Event) {
		e.collaborators = collaborators
	}
}

func WithObservations(observations string) Option {
	return func(e *Event) {
		e.observations = observations
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(e *Event) {
		e.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(e *Event) {
		e.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, name string, startsAt time.Time, opts ...Option) *Event {
	e := &Event{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		startsAt:  startsAt,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Event) ID() uuid.UUID                   { return e.id }
func (e *Event) TenantID() uuid.UUID             { return e.tenantID }
func (e *Event) Name() string                    { return e.name }
func (e *Event) StartsAt() time.Time             { return e.startsAt }
func (e *Event) Duration() *time.Duration        { return e.duration }
func (e *Event) PlaceID() *uuid.UUID             { return e.placeID }
func (e *Event) PlaceName() string               { return e.placeName }
func (e *Event) PlaceAddress() string            { return e.placeAddress }
func (e *Event) ResponsibleMemberID() *uuid.UUID { return e.responsibleMemberID }
func (e *Event) ProjectID() *uuid.UUID           { return e.projectID }
func (e *Event) Note() string                    { return e.note }
func (e *Event) Collaborators() string           { return e.collaborators }
func (e *Event) Observations() string            { return e.observations }
func (e *Event) CreatedAt() time.Time            { return e.createdAt }
func (e *Event) UpdatedAt() time.Time            { return e.updatedAt }
