package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/modules/interchange/domain"
	"github.com/civicore-hq/civicore/modules/interchange/keyindex"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/contact"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/event"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/inventory"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/member"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/place"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/project"
	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/transaction"
	"github.com/civicore-hq/civicore/pkg/excel"
)

// importRun is the state of one in-flight import: the natural-key index,
// the transaction fingerprints seen so far, and the accumulating report.
// It lives for exactly one Import call.
type importRun struct {
	tenantID     uuid.UUID
	repos        Repositories
	coercer      schema.Coercer
	index        *keyindex.Index
	fingerprints map[string]uuid.UUID
	report       *domain.Report
}

func (r *importRun) resolve(ctx context.Context, entity domain.EntityType, row excel.Row) domain.Outcome {
	switch entity {
	case domain.EntityMember:
		return r.resolveMember(ctx, row)
	case domain.EntityPlace:
		return r.resolvePlace(ctx, row)
	case domain.EntityContact:
		return r.resolveContact(ctx, row)
	case domain.EntityInventoryItem:
		return r.resolveInventoryItem(ctx, row)
	case domain.EntityTransaction:
		return r.resolveTransaction(ctx, row)
	case domain.EntityProject:
		return r.resolveProject(ctx, row)
	case domain.EntityEvent:
		return r.resolveEvent(ctx, row)
	}
	return domain.Failed(errors.Errorf("unknown entity type %q", entity))
}

// mergeText keeps the stored value when the incoming cell is blank. A blank
// cell means "no information", never "erase".
func mergeText(incoming, stored string) string {
	if incoming == "" {
		return stored
	}
	return incoming
}

func mergeDate(incoming, stored *time.Time) *time.Time {
	if incoming == nil {
		return stored
	}
	return incoming
}

func (r *importRun) resolveMember(ctx context.Context, row excel.Row) domain.Outcome {
	mr, err := schema.MemberRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	existing, err := r.repos.Members.GetByNumber(ctx, mr.MemberNumber)
	if err != nil && !errors.Is(err, member.ErrNotFound) {
		return domain.Failed(err)
	}

	if existing == nil {
		created, err := r.repos.Members.Create(ctx, member.New(
			r.tenantID, mr.MemberNumber, mr.FirstName, mr.LastName,
			member.WithPhone(mr.Phone),
			member.WithEmail(mr.Email),
			member.WithAddress(mr.Address, mr.StreetNumber, mr.Floor, mr.Stair, mr.PostalCode, mr.Province, mr.Country),
			member.WithBirthDate(mr.BirthDate),
			member.WithDuesPaid(mr.DuesPaid != nil && *mr.DuesPaid),
			member.WithNote(mr.Note),
		))
		if err != nil {
			return domain.Failed(err)
		}
		r.index.Put(keyindex.Members, created.Number(), created.ID())
		return domain.Created(created.ID())
	}

	duesPaid := existing.DuesPaid()
	if mr.DuesPaid != nil {
		duesPaid = *mr.DuesPaid
	}
	updated, err := r.repos.Members.Update(ctx, member.New(
		r.tenantID, mr.MemberNumber, mr.FirstName, mr.LastName,
		member.WithID(existing.ID()),
		member.WithPhone(mergeText(mr.Phone, existing.Phone())),
		member.WithEmail(mergeText(mr.Email, existing.Email())),
		member.WithAddress(
			mergeText(mr.Address, existing.Address()),
			mergeText(mr.StreetNumber, existing.StreetNumber()),
			mergeText(mr.Floor, existing.Floor()),
			mergeText(mr.Stair, existing.Stair()),
			mergeText(mr.PostalCode, existing.PostalCode()),
			mergeText(mr.Province, existing.Province()),
			mergeText(mr.Country, existing.Country()),
		),
		member.WithBirthDate(mergeDate(mr.BirthDate, existing.BirthDate())),
		member.WithDuesPaid(duesPaid),
		member.WithNote(mergeText(mr.Note, existing.Note())),
		member.WithCreatedAt(existing.CreatedAt()),
	))
	if err != nil {
		return domain.Failed(err)
	}
	r.index.Put(keyindex.Members, updated.Number(), updated.ID())
	return domain.Updated(updated.ID())
}

func (r *importRun) resolvePlace(ctx context.Context, row excel.Row) domain.Outcome {
	pr, err := schema.PlaceRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	existing, err := r.repos.Places.GetByName(ctx, pr.Name)
	if err != nil && !errors.Is(err, place.ErrNotFound) {
		return domain.Failed(err)
	}

	if existing == nil {
		created, err := r.repos.Places.Create(ctx, place.New(
			r.tenantID, pr.Name,
			place.WithAddress(pr.Address, pr.StreetNumber, pr.PostalCode, pr.City, pr.Country),
			place.WithDescription(pr.Description),
		))
		if err != nil {
			return domain.Failed(err)
		}
		r.index.Put(keyindex.Places, created.Name(), created.ID())
		return domain.Created(created.ID())
	}

	updated, err := r.repos.Places.Update(ctx, place.New(
		r.tenantID, pr.Name,
		place.WithID(existing.ID()),
		place.WithAddress(
			mergeText(pr.Address, existing.Address()),
			mergeText(pr.StreetNumber, existing.StreetNumber()),
			mergeText(pr.PostalCode, existing.PostalCode()),
			mergeText(pr.City, existing.City()),
			mergeText(pr.Country, existing.Country()),
		),
		place.WithDescription(mergeText(pr.Description, existing.Description())),
		place.WithCreatedAt(existing.CreatedAt()),
	))
	if err != nil {
		return domain.Failed(err)
	}
	r.index.Put(keyindex.Places, updated.Name(), updated.ID())
	return domain.Updated(updated.ID())
}

func (r *importRun) resolveContact(ctx context.Context, row excel.Row) domain.Outcome {
	cr, err := schema.ContactRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	// Projects are processed later, so a project reference here only
	// resolves against projects that already existed before the run.
	var projectID *uuid.UUID
	if id, ok := r.index.Lookup(keyindex.Projects, cr.ProjectName); ok {
		projectID = &id
	}

	existing, err := r.repos.Contacts.GetByFullName(ctx, cr.FirstName, cr.LastName)
	if err != nil && !errors.Is(err, contact.ErrNotFound) {
		return domain.Failed(err)
	}

	if existing == nil {
		created, err := r.repos.Contacts.Create(ctx, contact.New(
			r.tenantID, cr.FirstName, cr.LastName,
			contact.WithRoleInfo(cr.RoleContactInfo),
			contact.WithRole(cr.Role),
			contact.WithPhone(cr.Phone),
			contact.WithEmail(cr.Email),
			contact.WithNote(cr.Note),
			contact.WithProjectID(projectID),
		))
		if err != nil {
			return domain.Failed(err)
		}
		r.index.Put(keyindex.Contacts, created.DisplayName(), created.ID())
		return domain.Created(created.ID())
	}

	if projectID == nil {
		projectID = existing.ProjectID()
	}
	updated, err := r.repos.Contacts.Update(ctx, contact.New(
		r.tenantID, cr.FirstName, cr.LastName,
		contact.WithID(existing.ID()),
		contact.WithRoleInfo(mergeText(cr.RoleContactInfo, existing.RoleInfo())),
		contact.WithRole(mergeText(cr.Role, existing.Role())),
		contact.WithPhone(mergeText(cr.Phone, existing.Phone())),
		contact.WithEmail(mergeText(cr.Email, existing.Email())),
		contact.WithNote(mergeText(cr.Note, existing.Note())),
		contact.WithProjectID(projectID),
		contact.WithCreatedAt(existing.CreatedAt()),
	))
	if err != nil {
		return domain.Failed(err)
	}
	r.index.Put(keyindex.Contacts, updated.DisplayName(), updated.ID())
	return domain.Updated(updated.ID())
}

func (r *importRun) resolveInventoryItem(ctx context.Context, row excel.Row) domain.Outcome {
	ir, err := schema.InventoryItemRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	var placeID *uuid.UUID
	if id, ok := r.index.Lookup(keyindex.Places, ir.PlaceName); ok {
		placeID = &id
	}
	var custodianContactID, custodianMemberID *uuid.UUID
	if id, ok := r.index.Lookup(keyindex.Contacts, ir.CustodianContactName); ok {
		custodianContactID = &id
	}
	if id, ok := r.index.Lookup(keyindex.Members, ir.CustodianMemberNumber); ok {
		custodianMemberID = &id
	}

	existing, err := r.repos.Items.GetByName(ctx, ir.Name)
	if err != nil && !errors.Is(err, inventory.ErrNotFound) {
		return domain.Failed(err)
	}

	opts := []inventory.Option{
		inventory.WithPlaceID(placeID),
		inventory.WithPlaceName(ir.PlaceName),
		inventory.WithCustodianContactID(custodianContactID),
		inventory.WithCustodianMemberID(custodianMemberID),
	}
	if ir.Price != nil {
		opts = append(opts, inventory.WithPrice(*ir.Price))
	}

	if existing == nil {
		created, err := r.repos.Items.Create(ctx, inventory.New(
			r.tenantID, ir.Name,
			append(opts, inventory.WithUsageNote(ir.UsageNote))...,
		))
		if err != nil {
			return domain.Failed(err)
		}
		return domain.Created(created.ID())
	}

	if ir.Price == nil {
		opts = append(opts, inventory.WithPrice(existing.Price()))
	}
	if placeID == nil && ir.PlaceName == "" {
		opts = append(opts,
			inventory.WithPlaceID(existing.PlaceID()),
			inventory.WithPlaceName(existing.PlaceName()),
		)
	}
	if custodianContactID == nil && custodianMemberID == nil {
		opts = append(opts,
			inventory.WithCustodianContactID(existing.CustodianContactID()),
			inventory.WithCustodianMemberID(existing.CustodianMemberID()),
		)
	}
	updated, err := r.repos.Items.Update(ctx, inventory.New(
		r.tenantID, ir.Name,
		append(opts,
			inventory.WithID(existing.ID()),
			inventory.WithUsageNote(mergeText(ir.UsageNote, existing.UsageNote())),
			inventory.WithCreatedAt(existing.CreatedAt()),
		)...,
	))
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Updated(updated.ID())
}

func transactionFingerprint(date time.Time, minorUnits int64, currency, label string) string {
	return fmt.Sprintf("%s|%d|%s|%s", date.Format("2006-01-02"), minorUnits, currency, strings.ToLower(strings.TrimSpace(label)))
}

func (r *importRun) resolveTransaction(ctx context.Context, row excel.Row) domain.Outcome {
	tr, err := schema.TransactionRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	// Transactions have no natural key. A content fingerprint keeps
	// re-imports of the same workbook from duplicating the ledger.
	fingerprint := transactionFingerprint(tr.Date, tr.Amount.Amount(), tr.Amount.Currency().Code, tr.Label)
	if id, ok := r.fingerprints[fingerprint]; ok {
		return domain.Updated(id)
	}

	created, err := r.repos.Transactions.Create(ctx, transaction.New(
		r.tenantID, tr.Amount, tr.Label, tr.Date,
		transaction.WithNote(tr.Note),
		transaction.WithCounterparty(tr.Counterparty),
		transaction.WithDueDate(tr.DueDate),
	))
	if err != nil {
		return domain.Failed(err)
	}
	r.fingerprints[fingerprint] = created.ID()
	return domain.Created(created.ID())
}

func (r *importRun) resolveProject(ctx context.Context, row excel.Row) domain.Outcome {
	pr, err := schema.ProjectRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	var placeID *uuid.UUID
	if id, ok := r.index.Lookup(keyindex.Places, pr.PlaceName); ok {
		placeID = &id
	}

	existing, err := r.repos.Projects.GetByName(ctx, pr.Name)
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		return domain.Failed(err)
	}

	if existing == nil {
		created, err := r.repos.Projects.Create(ctx, project.New(
			r.tenantID, pr.Name,
			project.WithResponsible(pr.Responsible),
			project.WithStartDate(pr.StartDate),
			project.WithEndDate(pr.EndDate),
			project.WithRecurring(pr.Recurring),
			project.WithPlaceID(placeID),
			project.WithPlaceName(pr.PlaceName),
			project.WithDescription(pr.Description),
			project.WithMaterials(pr.Materials),
			project.WithStakeholders(pr.Stakeholders),
		))
		if err != nil {
			return domain.Failed(err)
		}
		r.index.Put(keyindex.Projects, created.Name(), created.ID())
		return domain.Created(created.ID())
	}

	if placeID == nil && pr.PlaceName == "" {
		placeID = existing.PlaceID()
	}
	updated, err := r.repos.Projects.Update(ctx, project.New(
		r.tenantID, pr.Name,
		project.WithID(existing.ID()),
		project.WithResponsible(mergeText(pr.Responsible, existing.Responsible())),
		project.WithStartDate(mergeDate(pr.StartDate, existing.StartDate())),
		project.WithEndDate(mergeDate(pr.EndDate, existing.EndDate())),
		project.WithRecurring(pr.Recurring),
		project.WithPlaceID(placeID),
		project.WithPlaceName(mergeText(pr.PlaceName, existing.PlaceName())),
		project.WithDescription(mergeText(pr.Description, existing.Description())),
		project.WithMaterials(mergeText(pr.Materials, existing.Materials())),
		project.WithStakeholders(mergeText(pr.Stakeholders, existing.Stakeholders())),
		project.WithCreatedAt(existing.CreatedAt()),
	))
	if err != nil {
		return domain.Failed(err)
	}
	r.index.Put(keyindex.Projects, updated.Name(), updated.ID())
	return domain.Updated(updated.ID())
}

func (r *importRun) resolveEvent(ctx context.Context, row excel.Row) domain.Outcome {
	er, err := schema.EventRowFrom(row, r.coercer)
	if errors.Is(err, schema.ErrRequiredBlank) {
		return domain.Skipped(err.Error())
	}
	if err != nil {
		return domain.Failed(err)
	}

	// An unresolved place keeps the raw text; a resolved one links the
	// registry record and carries its canonical name and address along.
	var placeID *uuid.UUID
	placeName := er.PlaceNameOrText
	placeAddress := ""
	if id, ok := r.index.Lookup(keyindex.Places, er.PlaceNameOrText); ok {
		placeID = &id
		if resolved, err := r.repos.Places.GetByName(ctx, er.PlaceNameOrText); err == nil {
			placeName = resolved.Name()
			placeAddress = resolved.Address()
		}
	}

	var responsibleID *uuid.UUID
	if id, ok := r.index.Lookup(keyindex.Members, er.ResponsibleMemberNumber); ok {
		responsibleID = &id
	}

	existing, err := r.repos.Events.GetByName(ctx, er.Name)
	if err != nil && !errors.Is(err, event.ErrNotFound) {
		return domain.Failed(err)
	}

	if existing == nil {
		created, err := r.repos.Events.Create(ctx, event.New(
			r.tenantID, er.Name, er.StartTimestamp,
			event.WithDuration(er.Duration),
			event.WithPlaceID(placeID),
			event.WithPlaceName(placeName),
			event.WithPlaceAddress(placeAddress),
			event.WithResponsibleMemberID(responsibleID),
			event.WithNote(er.Note),
			event.WithCollaborators(er.Collaborators),
			event.WithObservations(er.Observations),
		))
		if err != nil {
			return domain.Failed(err)
		}
		return domain.Created(created.ID())
	}

	if placeID == nil && placeName == "" {
		placeID = existing.PlaceID()
		placeName = existing.PlaceName()
		placeAddress = existing.PlaceAddress()
	}
	if responsibleID == nil {
		responsibleID = existing.ResponsibleMemberID()
	}
	duration := er.Duration
	if duration == nil {
		duration = existing.Duration()
	}
	updated, err := r.repos.Events.Update(ctx, event.New(
		r.tenantID, er.Name, er.StartTimestamp,
		event.WithID(existing.ID()),
		event.WithDuration(duration),
		event.WithPlaceID(placeID),
		event.WithPlaceName(placeName),
		event.WithPlaceAddress(placeAddress),
		event.WithResponsibleMemberID(responsibleID),
		event.WithProjectID(existing.ProjectID()),
		event.WithNote(mergeText(er.Note, existing.Note())),
		event.WithCollaborators(mergeText(er.Collaborators, existing.Collaborators())),
		event.WithObservations(mergeText(er.Observations, existing.Observations())),
		event.WithCreatedAt(existing.CreatedAt()),
	))
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Updated(updated.ID())
}
