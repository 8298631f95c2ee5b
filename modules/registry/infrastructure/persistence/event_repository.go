package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/event"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	eventFindQuery = `
		SELECT id, tenant_id, name, starts_at, duration_seconds, place_id,
			place_name, place_address, responsible_member_id, project_id,
			note, collaborators, observations, created_at, updated_at
		FROM events`

	eventInsertQuery = `
		INSERT INTO events (id, tenant_id, name, starts_at, duration_seconds, place_id,
			place_name, place_address, responsible_member_id, project_id,
			note, collaborators, observations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	eventUpdateQuery = `
		UPDATE events
		SET starts_at = $1, duration_seconds = $2, place_id = $3, place_name = $4,
			place_address = $5, responsible_member_id = $6, project_id = $7,
			note = $8, collaborators = $9, observations = $10, updated_at = $11
		WHERE id = $12 AND tenant_id = $13`
)

type EventRepository struct{}

func NewEventRepository() event.Repository {
	return &EventRepository{}
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*event.Event, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryEvents(ctx, eventFindQuery+" WHERE tenant_id = $1 ORDER BY starts_at", tenantID.String())
}

func (r *EventRepository) GetByName(ctx context.Context, name string) (*event.Event, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	events, err := r.queryEvents(ctx, eventFindQuery+" WHERE tenant_id = $1 AND LOWER(name) = LOWER($2)", tenantID.String(), name)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, event.ErrNotFound
	}
	return events[0], nil
}

func durationToNullSeconds(d *event.Event) sql.NullInt64 {
	if d.Duration() == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d.Duration().Seconds()), Valid: true}
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) (*event.Event, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		eventInsertQuery,
		e.ID().String(),
		e.TenantID().String(),
		e.Name(),
		e.StartsAt(),
		durationToNullSeconds(e),
		uuidPointerToNullString(e.PlaceID()),
		mapping.ValueToSQLNullString(e.PlaceName()),
		mapping.ValueToSQLNullString(e.PlaceAddress()),
		uuidPointerToNullString(e.ResponsibleMemberID()),
		uuidPointerToNullString(e.ProjectID()),
		mapping.ValueToSQLNullString(e.Note()),
		mapping.ValueToSQLNullString(e.Collaborators()),
		mapping.ValueToSQLNullString(e.Observations()),
		e.CreatedAt(),
		e.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert event")
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) (*event.Event, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		eventUpdateQuery,
		e.StartsAt(),
		durationToNullSeconds(e),
		uuidPointerToNullString(e.PlaceID()),
		mapping.ValueToSQLNullString(e.PlaceName()),
		mapping.ValueToSQLNullString(e.PlaceAddress()),
		uuidPointerToNullString(e.ResponsibleMemberID()),
		uuidPointerToNullString(e.ProjectID()),
		mapping.ValueToSQLNullString(e.Note()),
		mapping.ValueToSQLNullString(e.Collaborators()),
		mapping.ValueToSQLNullString(e.Observations()),
		e.UpdatedAt(),
		e.ID().String(),
		e.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update event")
	}
	return e, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*event.Event, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		var m models.Event
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Name,
			&m.StartsAt,
			&m.DurationSeconds,
			&m.PlaceID,
			&m.PlaceName,
			&m.PlaceAddress,
			&m.ResponsibleMemberID,
			&m.ProjectID,
			&m.Note,
			&m.Collaborators,
			&m.Observations,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan event row")
		}
		events = append(events, toDomainEvent(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return events, nil
}
