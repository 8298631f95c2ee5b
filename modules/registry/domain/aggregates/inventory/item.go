package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a piece of inventory. The name is treated as a best-effort natural
// key within a tenant; duplicates may exist from hand-kept books, so upsert
// matches the first one.
//
// At most one custodian is set: either a contact or a member. When a source
// row names both, the member wins.
type Item struct {
	id                 uuid.UUID
	tenantID           uuid.UUID
	name               string
	usageNote          string
	price              decimal.Decimal
	placeID            *uuid.UUID
	placeName          string
	custodianContactID *uuid.UUID
	custodianMemberID  *uuid.UUID
	createdAt          time.Time
	updatedAt          time.Time
}

type Option func(*Item)

func WithID(id uuid.UUID) Option {
	return func(i *Item) {
		i.id = id
	}
}

func WithUsageNote(usageNote string) Option {
	return func(i *Item) {
		i.usageNote = usageNote
	}
}

func WithPrice(price decimal.Decimal) Option {
	return func(i *Item) {
		i.price = price
	}
}

func WithPlaceID(placeID *uuid.UUID) Option {
	return func(i *Item) {
		i.placeID = placeID
	}
}

func WithPlaceName(placeName string) Option {
	return func(i *Item) {
		i.placeName = placeName
	}
}

func WithCustodianContactID(contactID *uuid.UUID) Option {
	return func(i *Item) {
		i.custodianContactID = contactID
	}
}

func WithCustodianMemberID(memberID *uuid.UUID) Option {
	return func(i *Item) {
		i.custodianMemberID = memberID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(i *Item) {
		i.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(i *Item) {
		i.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, name string, opts ...Option) *Item {
	i := &Item{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		price:     decimal.Zero,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.enforceSingleCustodian()
	return i
}

func (i *Item) enforceSingleCustodian() {
	if i.custodianMemberID != nil && i.custodianContactID != nil {
		i.custodianContactID = nil
	}
}

func (i *Item) ID() uuid.UUID                  { return i.id }
func (i *Item) TenantID() uuid.UUID            { return i.tenantID }
func (i *Item) Name() string                   { return i.name }
func (i *Item) UsageNote() string              { return i.usageNote }
func (i *Item) Price() decimal.Decimal         { return i.price }
func (i *Item) PlaceID() *uuid.UUID            { return i.placeID }
func (i *Item) PlaceName() string              { return i.placeName }
func (i *Item) CustodianContactID() *uuid.UUID { return i.custodianContactID }
func (i *Item) CustodianMemberID() *uuid.UUID  { return i.custodianMemberID }
func (i *Item) CreatedAt() time.Time           { return i.createdAt }
func (i *Item) UpdatedAt() time.Time           { return i.updatedAt }
