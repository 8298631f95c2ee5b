package member

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Member is an association member. The natural key is the member number,
// unique within a tenant.
type Member struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	number       string
	firstName    string
	lastName     string
	phone        string
	email        string
	address      string
	streetNumber string
	floor        string
	stair        string
	postalCode   string
	province     string
	country      string
	birthDate    *time.Time
	duesPaid     bool
	note         string
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Member)

func WithID(id uuid.UUID) Option {
	return func(m *Member) {
		m.id = id
	}
}

func WithPhone(phone string) Option {
	return func(m *Member) {
		m.phone = phone
	}
}

func WithEmail(email string) Option {
	return func(m *Member) {
		m.email = email
	}
}

func WithAddress(address, streetNumber, floor, stair, postalCode, province, country string) Option {
	return func(m *Member) {
		m.address = address
		m.streetNumber = streetNumber
		m.floor = floor
		m.stair = stair
		m.postalCode = postalCode
		m.province = province
		m.country = country
	}
}

func WithBirthDate(birthDate *time.Time) Option {
	return func(m *Member) {
		m.birthDate = birthDate
	}
}

func WithDuesPaid(duesPaid bool) Option {
	return func(m *Member) {
		m.duesPaid = duesPaid
	}
}

func WithNote(note string) Option {
	return func(m *Member) {
		m.note = note
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(m *Member) {
		m.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(m *Member) {
		m.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, number, firstName, lastName string, opts ...Option) *Member {
	m := &Member{
		id:        uuid.New(),
		tenantID:  tenantID,
		number:    strings.TrimSpace(number),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Member) ID() uuid.UUID         { return m.id }
func (m *Member) TenantID() uuid.UUID   { return m.tenantID }
func (m *Member) Number() string        { return m.number }
func (m *Member) FirstName() string     { return m.firstName }
func (m *Member) LastName() string      { return m.lastName }
func (m *Member) Phone() string         { return m.phone }
func (m *Member) Email() string         { return m.email }
func (m *Member) Address() string       { return m.address }
func (m *Member) StreetNumber() string  { return m.streetNumber }
func (m *Member) Floor() string         { return m.floor }
func (m *Member) Stair() string         { return m.stair }
func (m *Member) PostalCode() string    { return m.postalCode }
func (m *Member) Province() string      { return m.province }
func (m *Member) Country() string       { return m.country }
func (m *Member) BirthDate() *time.Time { return m.birthDate }
func (m *Member) DuesPaid() bool        { return m.duesPaid }
func (m *Member) Note() string          { return m.note }
func (m *Member) CreatedAt() time.Time  { return m.createdAt }
func (m *Member) UpdatedAt() time.Time  { return m.updatedAt }

// DisplayName is how the member is rendered where a human-readable referent
// is needed, e.g. in exported workbooks.
func (m *Member) DisplayName() string {
	return strings.TrimSpace(m.firstName + " " + m.lastName)
}
