package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/project"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	projectFindQuery = `
		SELECT id, tenant_id, name, responsible, start_date, end_date, recurring,
			place_id, place_name, description, materials, stakeholders,
			created_at, updated_at
		FROM projects`

	projectInsertQuery = `
		INSERT INTO projects (id, tenant_id, name, responsible, start_date, end_date,
			recurring, place_id, place_name, description, materials, stakeholders,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	projectUpdateQuery = `
		UPDATE projects
		SET responsible = $1, start_date = $2, end_date = $3, recurring = $4,
			place_id = $5, place_name = $6, description = $7, materials = $8,
			stakeholders = $9, updated_at = $10
		WHERE id = $11 AND tenant_id = $12`
)

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*project.Project, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryProjects(ctx, projectFindQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID.String())
}

func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	projects, err := r.queryProjects(ctx, projectFindQuery+" WHERE tenant_id = $1 AND LOWER(name) = LOWER($2)", tenantID.String(), name)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, project.ErrNotFound
	}
	return projects[0], nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		projectInsertQuery,
		p.ID().String(),
		p.TenantID().String(),
		p.Name(),
		mapping.ValueToSQLNullString(p.Responsible()),
		mapping.PointerToSQLNullTime(p.StartDate()),
		mapping.PointerToSQLNullTime(p.EndDate()),
		p.Recurring(),
		uuidPointerToNullString(p.PlaceID()),
		mapping.ValueToSQLNullString(p.PlaceName()),
		mapping.ValueToSQLNullString(p.Description()),
		mapping.ValueToSQLNullString(p.Materials()),
		mapping.ValueToSQLNullString(p.Stakeholders()),
		p.CreatedAt(),
		p.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert project")
	}
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		projectUpdateQuery,
		mapping.ValueToSQLNullString(p.Responsible()),
		mapping.PointerToSQLNullTime(p.StartDate()),
		mapping.PointerToSQLNullTime(p.EndDate()),
		p.Recurring(),
		uuidPointerToNullString(p.PlaceID()),
		mapping.ValueToSQLNullString(p.PlaceName()),
		mapping.ValueToSQLNullString(p.Description()),
		mapping.ValueToSQLNullString(p.Materials()),
		mapping.ValueToSQLNullString(p.Stakeholders()),
		p.UpdatedAt(),
		p.ID().String(),
		p.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update project")
	}
	return p, nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Name,
			&m.Responsible,
			&m.StartDate,
			&m.EndDate,
			&m.Recurring,
			&m.PlaceID,
			&m.PlaceName,
			&m.Description,
			&m.Materials,
			&m.Stakeholders,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan project row")
		}
		projects = append(projects, toDomainProject(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return projects, nil
}
