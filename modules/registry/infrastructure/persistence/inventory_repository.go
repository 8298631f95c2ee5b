package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/inventory"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	inventoryFindQuery = `
		SELECT id, tenant_id, name, usage_note, price, place_id, place_name,
			custodian_contact_id, custodian_member_id, created_at, updated_at
		FROM inventory_items`

	inventoryInsertQuery = `
		INSERT INTO inventory_items (id, tenant_id, name, usage_note, price, place_id,
			place_name, custodian_contact_id, custodian_member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	inventoryUpdateQuery = `
		UPDATE inventory_items
		SET usage_note = $1, price = $2, place_id = $3, place_name = $4,
			custodian_contact_id = $5, custodian_member_id = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`
)

type InventoryRepository struct{}

func NewInventoryRepository() inventory.Repository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryItems(ctx, inventoryFindQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID.String())
}

func (r *InventoryRepository) GetByName(ctx context.Context, name string) (*inventory.Item, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	items, err := r.queryItems(ctx, inventoryFindQuery+" WHERE tenant_id = $1 AND LOWER(name) = LOWER($2)", tenantID.String(), name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, inventory.ErrNotFound
	}
	return items[0], nil
}

func (r *InventoryRepository) Create(ctx context.Context, i *inventory.Item) (*inventory.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		inventoryInsertQuery,
		i.ID().String(),
		i.TenantID().String(),
		i.Name(),
		mapping.ValueToSQLNullString(i.UsageNote()),
		i.Price().StringFixed(2),
		uuidPointerToNullString(i.PlaceID()),
		mapping.ValueToSQLNullString(i.PlaceName()),
		uuidPointerToNullString(i.CustodianContactID()),
		uuidPointerToNullString(i.CustodianMemberID()),
		i.CreatedAt(),
		i.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert inventory item")
	}
	return i, nil
}

func (r *InventoryRepository) Update(ctx context.Context, i *inventory.Item) (*inventory.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		inventoryUpdateQuery,
		mapping.ValueToSQLNullString(i.UsageNote()),
		i.Price().StringFixed(2),
		uuidPointerToNullString(i.PlaceID()),
		mapping.ValueToSQLNullString(i.PlaceName()),
		uuidPointerToNullString(i.CustodianContactID()),
		uuidPointerToNullString(i.CustodianMemberID()),
		i.UpdatedAt(),
		i.ID().String(),
		i.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update inventory item")
	}
	return i, nil
}

func (r *InventoryRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*inventory.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var items []*inventory.Item
	for rows.Next() {
		var m models.InventoryItem
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Name,
			&m.UsageNote,
			&m.Price,
			&m.PlaceID,
			&m.PlaceName,
			&m.CustodianContactID,
			&m.CustodianMemberID,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan inventory item row")
		}
		items = append(items, toDomainInventoryItem(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return items, nil
}
