package persistence

import (
	"database/sql"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/contact"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/event"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/inventory"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/member"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/place"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/project"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/transaction"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func nullStringToUUIDPointer(ns sql.NullString) *uuid.UUID {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	id, err := uuid.Parse(ns.String)
	if err != nil {
		return nil
	}
	return &id
}

func uuidPointerToNullString(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func toDomainMember(m *models.Member) *member.Member {
	return member.New(
		parseUUID(m.TenantID),
		m.Number,
		m.FirstName,
		m.LastName,
		member.WithID(parseUUID(m.ID)),
		member.WithPhone(mapping.SQLNullStringToValue(m.Phone)),
		member.WithEmail(mapping.SQLNullStringToValue(m.Email)),
		member.WithAddress(
			mapping.SQLNullStringToValue(m.Address),
			mapping.SQLNullStringToValue(m.StreetNumber),
			mapping.SQLNullStringToValue(m.Floor),
			mapping.SQLNullStringToValue(m.Stair),
			mapping.SQLNullStringToValue(m.PostalCode),
			mapping.SQLNullStringToValue(m.Province),
			mapping.SQLNullStringToValue(m.Country),
		),
		member.WithBirthDate(mapping.SQLNullTimeToPointer(m.BirthDate)),
		member.WithDuesPaid(m.DuesPaid),
		member.WithNote(mapping.SQLNullStringToValue(m.Note)),
		member.WithCreatedAt(m.CreatedAt),
		member.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainPlace(m *models.Place) *place.Place {
	return place.New(
		parseUUID(m.TenantID),
		m.Name,
		place.WithID(parseUUID(m.ID)),
		place.WithAddress(
			mapping.SQLNullStringToValue(m.Address),
			mapping.SQLNullStringToValue(m.StreetNumber),
			mapping.SQLNullStringToValue(m.PostalCode),
			mapping.SQLNullStringToValue(m.City),
			mapping.SQLNullStringToValue(m.Country),
		),
		place.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		place.WithCreatedAt(m.CreatedAt),
		place.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainContact(m *models.Contact) *contact.Contact {
	return contact.New(
		parseUUID(m.TenantID),
		m.FirstName,
		m.LastName,
		contact.WithID(parseUUID(m.ID)),
		contact.WithRoleInfo(mapping.SQLNullStringToValue(m.RoleInfo)),
		contact.WithRole(mapping.SQLNullStringToValue(m.Role)),
		contact.WithPhone(mapping.SQLNullStringToValue(m.Phone)),
		contact.WithEmail(mapping.SQLNullStringToValue(m.Email)),
		contact.WithNote(mapping.SQLNullStringToValue(m.Note)),
		contact.WithProjectID(nullStringToUUIDPointer(m.ProjectID)),
		contact.WithCreatedAt(m.CreatedAt),
		contact.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainInventoryItem(m *models.InventoryItem) *inventory.Item {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		price = decimal.Zero
	}
	return inventory.New(
		parseUUID(m.TenantID),
		m.Name,
		inventory.WithID(parseUUID(m.ID)),
		inventory.WithUsageNote(mapping.SQLNullStringToValue(m.UsageNote)),
		inventory.WithPrice(price),
		inventory.WithPlaceID(nullStringToUUIDPointer(m.PlaceID)),
		inventory.WithPlaceName(mapping.SQLNullStringToValue(m.PlaceName)),
		inventory.WithCustodianContactID(nullStringToUUIDPointer(m.CustodianContactID)),
		inventory.WithCustodianMemberID(nullStringToUUIDPointer(m.CustodianMemberID)),
		inventory.WithCreatedAt(m.CreatedAt),
		inventory.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainTransaction(m *models.Transaction) *transaction.Transaction {
	return transaction.New(
		parseUUID(m.TenantID),
		money.New(m.Amount, m.Currency),
		m.Label,
		m.TransactionDate,
		transaction.WithID(parseUUID(m.ID)),
		transaction.WithNote(mapping.SQLNullStringToValue(m.Note)),
		transaction.WithCounterparty(mapping.SQLNullStringToValue(m.Counterparty)),
		transaction.WithDueDate(mapping.SQLNullTimeToPointer(m.DueDate)),
		transaction.WithCreatedAt(m.CreatedAt),
		transaction.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainEvent(m *models.Event) *event.Event {
	var duration *time.Duration
	if m.DurationSeconds.Valid {
		d := time.Duration(m.DurationSeconds.Int64) * time.Second
		duration = &d
	}
	return event.New(
		parseUUID(m.TenantID),
		m.Name,
		m.StartsAt,
		event.WithID(parseUUID(m.ID)),
		event.WithDuration(duration),
		event.WithPlaceID(nullStringToUUIDPointer(m.PlaceID)),
		event.WithPlaceName(mapping.SQLNullStringToValue(m.PlaceName)),
		event.WithPlaceAddress(mapping.SQLNullStringToValue(m.PlaceAddress)),
		event.WithResponsibleMemberID(nullStringToUUIDPointer(m.ResponsibleMemberID)),
		event.WithProjectID(nullStringToUUIDPointer(m.ProjectID)),
		event.WithNote(mapping.SQLNullStringToValue(m.Note)),
		event.WithCollaborators(mapping.SQLNullStringToValue(m.Collaborators)),
		event.WithObservations(mapping.SQLNullStringToValue(m.Observations)),
		event.WithCreatedAt(m.CreatedAt),
		event.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainProject(m *models.Project) *project.Project {
	return project.New(
		parseUUID(m.TenantID),
		m.Name,
		project.WithID(parseUUID(m.ID)),
		project.WithResponsible(mapping.SQLNullStringToValue(m.Responsible)),
		project.WithStartDate(mapping.SQLNullTimeToPointer(m.StartDate)),
		project.WithEndDate(mapping.SQLNullTimeToPointer(m.EndDate)),
		project.WithRecurring(m.Recurring),
		project.WithPlaceID(nullStringToUUIDPointer(m.PlaceID)),
		project.WithPlaceName(mapping.SQLNullStringToValue(m.PlaceName)),
		project.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		project.WithMaterials(mapping.SQLNullStringToValue(m.Materials)),
		project.WithStakeholders(mapping.SQLNullStringToValue(m.Stakeholders)),
		project.WithCreatedAt(m.CreatedAt),
		project.WithUpdatedAt(m.UpdatedAt),
	)
}
