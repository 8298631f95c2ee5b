package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/place"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	placeFindQuery = `
		SELECT id, tenant_id, name, address, description, street_number,
			postal_code, city, country, created_at, updated_at
		FROM places`

	placeInsertQuery = `
		INSERT INTO places (id, tenant_id, name, address, description, street_number,
			postal_code, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	placeUpdateQuery = `
		UPDATE places
		SET name = $1, address = $2, description = $3, street_number = $4,
			postal_code = $5, city = $6, country = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`
)

type PlaceRepository struct{}

func NewPlaceRepository() place.Repository {
	return &PlaceRepository{}
}

func (r *PlaceRepository) GetAll(ctx context.Context) ([]*place.Place, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryPlaces(ctx, placeFindQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID.String())
}

func (r *PlaceRepository) GetByName(ctx context.Context, name string) (*place.Place, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	places, err := r.queryPlaces(ctx, placeFindQuery+" WHERE tenant_id = $1 AND LOWER(name) = LOWER($2)", tenantID.String(), name)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, place.ErrNotFound
	}
	return places[0], nil
}

func (r *PlaceRepository) Create(ctx context.Context, p *place.Place) (*place.Place, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		placeInsertQuery,
		p.ID().String(),
		p.TenantID().String(),
		p.Name(),
		mapping.ValueToSQLNullString(p.Address()),
		mapping.ValueToSQLNullString(p.Description()),
		mapping.ValueToSQLNullString(p.StreetNumber()),
		mapping.ValueToSQLNullString(p.PostalCode()),
		mapping.ValueToSQLNullString(p.City()),
		mapping.ValueToSQLNullString(p.Country()),
		p.CreatedAt(),
		p.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert place")
	}
	return p, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *place.Place) (*place.Place, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		placeUpdateQuery,
		p.Name(),
		mapping.ValueToSQLNullString(p.Address()),
		mapping.ValueToSQLNullString(p.Description()),
		mapping.ValueToSQLNullString(p.StreetNumber()),
		mapping.ValueToSQLNullString(p.PostalCode()),
		mapping.ValueToSQLNullString(p.City()),
		mapping.ValueToSQLNullString(p.Country()),
		p.UpdatedAt(),
		p.ID().String(),
		p.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update place")
	}
	return p, nil
}

func (r *PlaceRepository) queryPlaces(ctx context.Context, query string, args ...interface{}) ([]*place.Place, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var places []*place.Place
	for rows.Next() {
		var m models.Place
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Name,
			&m.Address,
			&m.Description,
			&m.StreetNumber,
			&m.PostalCode,
			&m.City,
			&m.Country,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan place row")
		}
		places = append(places, toDomainPlace(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return places, nil
}
