package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/contact"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	contactFindQuery = `
		SELECT id, tenant_id, first_name, last_name, role_info, role, phone,
			email, note, project_id, created_at, updated_at
		FROM contacts`

	contactInsertQuery = `
		INSERT INTO contacts (id, tenant_id, first_name, last_name, role_info, role,
			phone, email, note, project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	contactUpdateQuery = `
		UPDATE contacts
		SET role_info = $1, role = $2, phone = $3, email = $4, note = $5,
			project_id = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`
)

type ContactRepository struct{}

func NewContactRepository() contact.Repository {
	return &ContactRepository{}
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryContacts(ctx, contactFindQuery+" WHERE tenant_id = $1 ORDER BY first_name, last_name", tenantID.String())
}

func (r *ContactRepository) GetByFullName(ctx context.Context, firstName, lastName string) (*contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	contacts, err := r.queryContacts(
		ctx,
		contactFindQuery+" WHERE tenant_id = $1 AND LOWER(first_name) = LOWER($2) AND LOWER(last_name) = LOWER($3)",
		tenantID.String(), firstName, lastName,
	)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, contact.ErrNotFound
	}
	return contacts[0], nil
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		contactInsertQuery,
		c.ID().String(),
		c.TenantID().String(),
		c.FirstName(),
		c.LastName(),
		mapping.ValueToSQLNullString(c.RoleInfo()),
		mapping.ValueToSQLNullString(c.Role()),
		mapping.ValueToSQLNullString(c.Phone()),
		mapping.ValueToSQLNullString(c.Email()),
		mapping.ValueToSQLNullString(c.Note()),
		uuidPointerToNullString(c.ProjectID()),
		c.CreatedAt(),
		c.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert contact")
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		contactUpdateQuery,
		mapping.ValueToSQLNullString(c.RoleInfo()),
		mapping.ValueToSQLNullString(c.Role()),
		mapping.ValueToSQLNullString(c.Phone()),
		mapping.ValueToSQLNullString(c.Email()),
		mapping.ValueToSQLNullString(c.Note()),
		uuidPointerToNullString(c.ProjectID()),
		c.UpdatedAt(),
		c.ID().String(),
		c.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update contact")
	}
	return c, nil
}

func (r *ContactRepository) queryContacts(ctx context.Context, query string, args ...interface{}) ([]*contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var contacts []*contact.Contact
	for rows.Next() {
		var m models.Contact
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.FirstName,
			&m.LastName,
			&m.RoleInfo,
			&m.Role,
			&m.Phone,
			&m.Email,
			&m.Note,
			&m.ProjectID,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan contact row")
		}
		contacts = append(contacts, toDomainContact(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return contacts, nil
}
