package domain

import (
	"github.com/google/uuid"
)

// EntityType names the workbook-backed entity kinds in their fixed
// processing order.
type EntityType string

const (
	EntityMember        EntityType = "member"
	EntityPlace         EntityType = "place"
	EntityContact       EntityType = "contact"
	EntityInventoryItem EntityType = "inventory_item"
	EntityTransaction   EntityType = "transaction"
	EntityProject       EntityType = "project"
	EntityEvent         EntityType = "event"
)

// EntityTypes is the dependency order imports run in: an entity type is
// processed only after every type it references by natural key, except the
// tolerated Contact→Project forward reference.
var EntityTypes = []EntityType{
	EntityMember,
	EntityPlace,
	EntityContact,
	EntityInventoryItem,
	EntityTransaction,
	EntityProject,
	EntityEvent,
}

type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the result of resolving one row. A Skipped row is missing a
// structurally required field and is not an error; a Failed row hit a
// coercion or persistence error scoped to that row alone.
type Outcome struct {
	Kind   OutcomeKind
	ID     uuid.UUID
	Reason string
}

func Created(id uuid.UUID) Outcome {
	return Outcome{Kind: OutcomeCreated, ID: id}
}

func Updated(id uuid.UUID) Outcome {
	return Outcome{Kind: OutcomeUpdated, ID: id}
}

func Skipped(reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Reason: reason}
}

func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: err.Error()}
}
