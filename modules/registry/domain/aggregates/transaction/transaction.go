package transaction

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// Transaction is an append-only financial movement. There is no natural key;
// the sign of the amount alone distinguishes inflow from outflow.
type Transaction struct {
	id              uuid.UUID
	tenantID        uuid.UUID
	amount          *money.Money
	label           string
	note            string
	counterparty    string
	transactionDate time.Time
	dueDate         *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

type Option func(*Transaction)

func WithID(id uuid.UUID) Option {
	return func(t *Transaction) {
		t.id = id
	}
}

func WithNote(note string) Option {
	return func(t *Transaction) {
		t.note = note
	}
}

func WithCounterparty(counterparty string) Option {
	return func(t *Transaction) {
		t.counterparty = counterparty
	}
}

func WithDueDate(dueDate *time.Time) Option {
	return func(t *Transaction) {
		t.dueDate = dueDate
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(t *Transaction) {
		t.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(t *Transaction) {
		t.updatedAt = updatedAt
	}
}

func New(tenantID uuid.UUID, amount *money.Money, label string, transactionDate time.Time, opts ...Option) *Transaction {
	t := &Transaction{
		id:              uuid.New(),
		tenantID:        tenantID,
		amount:          amount,
		label:           strings.TrimSpace(label),
		transactionDate: transactionDate,
		createdAt:       time.Now(),
		updatedAt:       time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transaction) ID() uuid.UUID              { return t.id }
func (t *Transaction) TenantID() uuid.UUID        { return t.tenantID }
func (t *Transaction) Amount() *money.Money       { return t.amount }
func (t *Transaction) Label() string              { return t.label }
func (t *Transaction) Note() string               { return t.note }
func (t *Transaction) Counterparty() string       { return t.counterparty }
func (t *Transaction) TransactionDate() time.Time { return t.transactionDate }
func (t *Transaction) DueDate() *time.Time        { return t.dueDate }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time       { return t.updatedAt }

// IsInflow reports whether the amount is non-negative. No separate type
// field exists; the sign is the category.
func (t *Transaction) IsInflow() bool {
	return t.amount != nil && t.amount.Amount() >= 0
}
