package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/civicore-hq/civicore/modules/core/domain/entities/tenant"
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
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/eventbus"
	"github.com/civicore-hq/civicore/pkg/excel"
	"github.com/civicore-hq/civicore/pkg/metrics"
)

// ErrUnknownTenant aborts a run before any row is touched.
var ErrUnknownTenant = errors.New("unknown tenant")

// Repositories bundles everything an interchange run reads and writes.
type Repositories struct {
	Tenants      tenant.Repository
	Members      member.Repository
	Places       place.Repository
	Contacts     contact.Repository
	Items        inventory.Repository
	Transactions transaction.Repository
	Projects     project.Repository
	Events       event.Repository
}

// ImportService ingests a workbook for one tenant. Entity types are
// processed in their fixed dependency order regardless of the physical
// sheet order in the file, and every row resolves to its own outcome;
// only an undecodable workbook or an unknown tenant aborts the run.
type ImportService struct {
	repos     Repositories
	coercer   schema.Coercer
	publisher eventbus.EventBus
}

func NewImportService(repos Repositories, coercer schema.Coercer, publisher eventbus.EventBus) *ImportService {
	return &ImportService{
		repos:     repos,
		coercer:   coercer,
		publisher: publisher,
	}
}

var importSheets = map[domain.EntityType]string{
	domain.EntityMember:        schema.SheetMembers,
	domain.EntityPlace:         schema.SheetPlaces,
	domain.EntityContact:       schema.SheetContacts,
	domain.EntityInventoryItem: schema.SheetInventoryItems,
	domain.EntityTransaction:   schema.SheetTransactions,
	domain.EntityProject:       schema.SheetProjects,
	domain.EntityEvent:         schema.SheetEvents,
}

func (s *ImportService) Import(ctx context.Context, tenantID uuid.UUID, data []byte) (*domain.Report, error) {
	if _, err := s.repos.Tenants.GetByID(ctx, tenantID); err != nil {
		metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrapf(ErrUnknownTenant, "%s", tenantID)
	}

	workbook, err := excel.Decode(data)
	if err != nil {
		metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrap(err, "decode workbook")
	}

	ctx = composables.WithTenantID(ctx, tenantID)
	logger := composables.UseLogger(ctx).WithField("tenant", tenantID)

	run, err := s.newRun(ctx, tenantID)
	if err != nil {
		metrics.ImportRunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	for _, entity := range domain.EntityTypes {
		sheet, ok := workbook.Sheet(importSheets[entity])
		if !ok {
			continue
		}
		for _, row := range sheet.Rows {
			outcome := s.resolveRow(ctx, run, entity, row)
			run.report.Add(entity, row.Index, outcome)
			metrics.ImportRowsTotal.WithLabelValues(string(entity), string(outcome.Kind)).Inc()
			if outcome.Kind == domain.OutcomeFailed {
				logger.WithField("entity", entity).
					WithField("row", row.Index).
					Warnf("row failed: %s", outcome.Reason)
			}
		}
	}

	metrics.ImportRunsTotal.WithLabelValues("ok").Inc()
	logger.WithField("failed", run.report.TotalFailed()).Info("import completed")
	if s.publisher != nil {
		s.publisher.Publish(domain.ImportCompletedEvent{TenantID: tenantID, Report: run.report})
	}
	return run.report, nil
}

// resolveRow runs one row through its resolver. Each row gets its own
// transaction when a pool is wired; a failing row rolls back alone and
// never disturbs rows already persisted.
func (s *ImportService) resolveRow(ctx context.Context, run *importRun, entity domain.EntityType, row excel.Row) domain.Outcome {
	var outcome domain.Outcome
	resolve := func(txCtx context.Context) error {
		outcome = run.resolve(txCtx, entity, row)
		if outcome.Kind == domain.OutcomeFailed {
			return errors.New(outcome.Reason)
		}
		return nil
	}

	if _, err := composables.UsePool(ctx); err != nil {
		_ = resolve(ctx)
		return outcome
	}
	if err := composables.InTenantTx(ctx, resolve); err != nil && outcome.Kind != domain.OutcomeFailed {
		return domain.Failed(err)
	}
	return outcome
}

// newRun seeds the natural-key index and the transaction fingerprints
// from the tenant's current data so cross-references and duplicate
// detection see pre-existing records too.
func (s *ImportService) newRun(ctx context.Context, tenantID uuid.UUID) (*importRun, error) {
	run := &importRun{
		tenantID:     tenantID,
		repos:        s.repos,
		coercer:      s.coercer,
		index:        keyindex.New(),
		fingerprints: make(map[string]uuid.UUID),
		report:       domain.NewReport(),
	}

	members, err := s.repos.Members.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load members")
	}
	for _, m := range members {
		run.index.Put(keyindex.Members, m.Number(), m.ID())
	}

	places, err := s.repos.Places.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load places")
	}
	for _, p := range places {
		run.index.Put(keyindex.Places, p.Name(), p.ID())
	}

	contacts, err := s.repos.Contacts.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load contacts")
	}
	for _, c := range contacts {
		run.index.Put(keyindex.Contacts, c.DisplayName(), c.ID())
	}

	projects, err := s.repos.Projects.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load projects")
	}
	for _, p := range projects {
		run.index.Put(keyindex.Projects, p.Name(), p.ID())
	}

	transactions, err := s.repos.Transactions.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load transactions")
	}
	for _, t := range transactions {
		run.fingerprints[transactionFingerprint(t.TransactionDate(), t.Amount().Amount(), t.Amount().Currency().Code, t.Label())] = t.ID()
	}

	return run, nil
}
