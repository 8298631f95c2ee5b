package services

import (
	"context"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/modules/interchange/domain"
	"github.com/civicore-hq/civicore/modules/interchange/schema"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/eventbus"
	"github.com/civicore-hq/civicore/pkg/excel"
	"github.com/civicore-hq/civicore/pkg/metrics"
)

// ExportService assembles a tenant's current data into a workbook with
// the same sheet and column layout the importer reads. Cross-references
// are rendered as the referent's natural key; a dangling reference
// renders as an empty cell rather than failing the export.
type ExportService struct {
	repos     Repositories
	coercer   schema.Coercer
	publisher eventbus.EventBus
}

func NewExportService(repos Repositories, coercer schema.Coercer, publisher eventbus.EventBus) *ExportService {
	return &ExportService{
		repos:     repos,
		coercer:   coercer,
		publisher: publisher,
	}
}

func (s *ExportService) Export(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	if _, err := s.repos.Tenants.GetByID(ctx, tenantID); err != nil {
		metrics.ExportRunsTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrapf(ErrUnknownTenant, "%s", tenantID)
	}
	ctx = composables.WithTenantID(ctx, tenantID)

	names, err := s.loadReferents(ctx)
	if err != nil {
		metrics.ExportRunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	sheets := make([]excel.SheetData, 0, len(domain.EntityTypes))
	for _, entity := range domain.EntityTypes {
		sheet, err := s.assembleSheet(ctx, entity, names)
		if err != nil {
			metrics.ExportRunsTotal.WithLabelValues("failed").Inc()
			return nil, errors.Wrapf(err, "assemble %s", importSheets[entity])
		}
		sheets = append(sheets, sheet)
	}

	data, err := excel.Encode(sheets)
	if err != nil {
		metrics.ExportRunsTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrap(err, "encode workbook")
	}

	metrics.ExportRunsTotal.WithLabelValues("ok").Inc()
	if s.publisher != nil {
		s.publisher.Publish(domain.ExportCompletedEvent{TenantID: tenantID, Bytes: len(data)})
	}
	return data, nil
}

// referents maps entity ids to the display text that stands in for them
// in exported cells.
type referents struct {
	memberNumbers map[uuid.UUID]string
	memberNames   map[uuid.UUID]string
	placeNames    map[uuid.UUID]string
	contactNames  map[uuid.UUID]string
	projectNames  map[uuid.UUID]string
}

func (n referents) resolve(table map[uuid.UUID]string, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return table[*id]
}

func (s *ExportService) loadReferents(ctx context.Context) (referents, error) {
	names := referents{
		memberNumbers: make(map[uuid.UUID]string),
		memberNames:   make(map[uuid.UUID]string),
		placeNames:    make(map[uuid.UUID]string),
		contactNames:  make(map[uuid.UUID]string),
		projectNames:  make(map[uuid.UUID]string),
	}

	members, err := s.repos.Members.GetAll(ctx)
	if err != nil {
		return names, errors.Wrap(err, "load members")
	}
	for _, m := range members {
		names.memberNumbers[m.ID()] = m.Number()
		names.memberNames[m.ID()] = m.DisplayName()
	}

	places, err := s.repos.Places.GetAll(ctx)
	if err != nil {
		return names, errors.Wrap(err, "load places")
	}
	for _, p := range places {
		names.placeNames[p.ID()] = p.Name()
	}

	contacts, err := s.repos.Contacts.GetAll(ctx)
	if err != nil {
		return names, errors.Wrap(err, "load contacts")
	}
	for _, c := range contacts {
		names.contactNames[c.ID()] = c.DisplayName()
	}

	projects, err := s.repos.Projects.GetAll(ctx)
	if err != nil {
		return names, errors.Wrap(err, "load projects")
	}
	for _, p := range projects {
		names.projectNames[p.ID()] = p.Name()
	}

	return names, nil
}

func (s *ExportService) assembleSheet(ctx context.Context, entity domain.EntityType, names referents) (excel.SheetData, error) {
	switch entity {
	case domain.EntityMember:
		return s.assembleMembers(ctx)
	case domain.EntityPlace:
		return s.assemblePlaces(ctx)
	case domain.EntityContact:
		return s.assembleContacts(ctx, names)
	case domain.EntityInventoryItem:
		return s.assembleInventoryItems(ctx, names)
	case domain.EntityTransaction:
		return s.assembleTransactions(ctx)
	case domain.EntityProject:
		return s.assembleProjects(ctx, names)
	case domain.EntityEvent:
		return s.assembleEvents(ctx, names)
	}
	return excel.SheetData{}, errors.Errorf("unknown entity type %q", entity)
}

func (s *ExportService) formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(s.coercer.DateFormat)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func formatDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	total := int64(d.Seconds())
	return strconv.FormatInt(total/3600, 10) + ":" +
		pad2(total/60%60) + ":" + pad2(total%60)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

func (s *ExportService) assembleMembers(ctx context.Context) (excel.SheetData, error) {
	members, err := s.repos.Members.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.Number(), m.FirstName(), m.LastName(), m.Phone(), m.Email(),
			m.Address(), m.StreetNumber(), m.Floor(), m.Stair(), m.PostalCode(),
			m.Province(), m.Country(), s.formatDate(m.BirthDate()),
			formatBool(m.DuesPaid()), m.Note(),
		})
	}
	return excel.SheetData{Name: schema.SheetMembers, Headers: schema.MemberColumns, Rows: rows}, nil
}

func (s *ExportService) assemblePlaces(ctx context.Context) (excel.SheetData, error) {
	places, err := s.repos.Places.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(places))
	for _, p := range places {
		rows = append(rows, []string{
			p.Name(), p.Address(), p.Description(), p.StreetNumber(),
			p.PostalCode(), p.City(), p.Country(),
		})
	}
	return excel.SheetData{Name: schema.SheetPlaces, Headers: schema.PlaceColumns, Rows: rows}, nil
}

func (s *ExportService) assembleContacts(ctx context.Context, names referents) (excel.SheetData, error) {
	contacts, err := s.repos.Contacts.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			c.FirstName(), c.LastName(), c.RoleInfo(), c.Role(), c.Phone(),
			c.Email(), c.Note(), names.resolve(names.projectNames, c.ProjectID()),
		})
	}
	return excel.SheetData{Name: schema.SheetContacts, Headers: schema.ContactColumns, Rows: rows}, nil
}

func (s *ExportService) assembleInventoryItems(ctx context.Context, names referents) (excel.SheetData, error) {
	items, err := s.repos.Items.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		placeName := names.resolve(names.placeNames, i.PlaceID())
		if placeName == "" {
			placeName = i.PlaceName()
		}
		rows = append(rows, []string{
			i.Name(), i.UsageNote(), i.Price().StringFixed(2), placeName,
			names.resolve(names.contactNames, i.CustodianContactID()),
			names.resolve(names.memberNumbers, i.CustodianMemberID()),
		})
	}
	return excel.SheetData{Name: schema.SheetInventoryItems, Headers: schema.InventoryItemColumns, Rows: rows}, nil
}

func (s *ExportService) assembleTransactions(ctx context.Context) (excel.SheetData, error) {
	transactions, err := s.repos.Transactions.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		date := t.TransactionDate()
		amount := decimalString(t.Amount().Amount())
		rows = append(rows, []string{
			s.formatDate(&date), amount, t.Label(), t.Note(),
			t.Counterparty(), s.formatDate(t.DueDate()),
		})
	}
	return excel.SheetData{Name: schema.SheetTransactions, Headers: schema.TransactionColumns, Rows: rows}, nil
}

// decimalString renders minor units as a plain two-decimal amount, the
// form the importer parses back.
func decimalString(minorUnits int64) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return sign + strconv.FormatInt(minorUnits/100, 10) + "." + pad2(minorUnits%100)
}

func (s *ExportService) assembleProjects(ctx context.Context, names referents) (excel.SheetData, error) {
	projects, err := s.repos.Projects.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		placeName := names.resolve(names.placeNames, p.PlaceID())
		if placeName == "" {
			placeName = p.PlaceName()
		}
		rows = append(rows, []string{
			p.Name(), p.Responsible(), s.formatDate(p.StartDate()),
			s.formatDate(p.EndDate()), placeName, p.Description(),
			p.Materials(), p.Stakeholders(), formatBool(p.Recurring()),
		})
	}
	return excel.SheetData{Name: schema.SheetProjects, Headers: schema.ProjectColumns, Rows: rows}, nil
}

func (s *ExportService) assembleEvents(ctx context.Context, names referents) (excel.SheetData, error) {
	events, err := s.repos.Events.GetAll(ctx)
	if err != nil {
		return excel.SheetData{}, err
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		placeText := names.resolve(names.placeNames, e.PlaceID())
		if placeText == "" {
			placeText = e.PlaceName()
		}
		startsAt := e.StartsAt()
		rows = append(rows, []string{
			e.Name(), startsAt.Format(s.coercer.TimestampFormat), placeText,
			names.resolve(names.memberNumbers, e.ResponsibleMemberID()),
			e.Note(), formatDuration(e.Duration()),
			e.Collaborators(), e.Observations(),
		})
	}
	return excel.SheetData{Name: schema.SheetEvents, Headers: schema.EventColumns, Rows: rows}, nil
}
