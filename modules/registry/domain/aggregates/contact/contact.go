package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is an external person the association works with. The natural key
// is the (first name, last name) pair within a tenant.
type Contact struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	firstName string
	lastName  string
	roleInfo  string
	role      string
	phone     string
	email     string
	note      string
	projectID *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Contact)

func WithID(id uuid.UUID) Option {
	return func(c *Contact) {
		c.id = id
	}
}

func WithRoleInfo(roleInfo string) Option {
	return func(c *Contact) {
		c.roleInfo = roleInfo
	}
}

func WithRole(role string) Option {
	return func(c *Contact) {
		c.role = role
	}
}

func WithPhone(phone string) Option {
	return func(c *Contact) {
		c.phone = phone
	}
}

func WithEmail(email string) Option {
	return func(c *Contact) {
		c.email = email
	}
}

func WithNote(note string) Option {
	return func(c *Contact) {
		c.note = note
	}
}

func WithProjectID(projectID *uuid.UUID) Option {
	return func(c *Contact) {
		c.projectID = projectID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *Contact) {
		c.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *Contact) {
		c.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, firstName, lastName string, opts ...Option) *Contact {
	c := &Contact{
		id:        uuid.New(),
		tenantID:  tenantID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Contact) ID() uuid.UUID         { return c.id }
func (c *Contact) TenantID() uuid.UUID   { return c.tenantID }
func (c *Contact) FirstName() string     { return c.firstName }
func (c *Contact) LastName() string      { return c.lastName }
func (c *Contact) RoleInfo() string      { return c.roleInfo }
func (c *Contact) Role() string          { return c.role }
func (c *Contact) Phone() string         { return c.phone }
func (c *Contact) Email() string         { return c.email }
func (c *Contact) Note() string          { return c.note }
func (c *Contact) ProjectID() *uuid.UUID { return c.projectID }
func (c *Contact) CreatedAt() time.Time  { return c.createdAt }
func (c *Contact) UpdatedAt() time.Time  { return c.updatedAt }

func (c *Contact) DisplayName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}

// FullNameKey is the natural-key form of the contact's name used for
// case-insensitive lookups.
func FullNameKey(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)))
}
