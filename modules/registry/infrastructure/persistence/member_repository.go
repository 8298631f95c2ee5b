package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/member"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	memberFindQuery = `
		SELECT id, tenant_id, number, first_name, last_name, phone, email,
			address, street_number, floor, stair, postal_code, province, country,
			birth_date, dues_paid, note, created_at, updated_at
		FROM members`

	memberInsertQuery = `
		INSERT INTO members (id, tenant_id, number, first_name, last_name, phone, email,
			address, street_number, floor, stair, postal_code, province, country,
			birth_date, dues_paid, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	memberUpdateQuery = `
		UPDATE members
		SET first_name = $1, last_name = $2, phone = $3, email = $4,
			address = $5, street_number = $6, floor = $7, stair = $8,
			postal_code = $9, province = $10, country = $11,
			birth_date = $12, dues_paid = $13, note = $14, updated_at = $15
		WHERE id = $16 AND tenant_id = $17`
)

type MemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &MemberRepository{}
}

func (r *MemberRepository) GetAll(ctx context.Context) ([]*member.Member, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryMembers(ctx, memberFindQuery+" WHERE tenant_id = $1 ORDER BY number", tenantID.String())
}

func (r *MemberRepository) GetByNumber(ctx context.Context, number string) (*member.Member, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	members, err := r.queryMembers(ctx, memberFindQuery+" WHERE tenant_id = $1 AND number = $2", tenantID.String(), number)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, member.ErrNotFound
	}
	return members[0], nil
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) (*member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		memberInsertQuery,
		m.ID().String(),
		m.TenantID().String(),
		m.Number(),
		m.FirstName(),
		m.LastName(),
		mapping.ValueToSQLNullString(m.Phone()),
		mapping.ValueToSQLNullString(m.Email()),
		mapping.ValueToSQLNullString(m.Address()),
		mapping.ValueToSQLNullString(m.StreetNumber()),
		mapping.ValueToSQLNullString(m.Floor()),
		mapping.ValueToSQLNullString(m.Stair()),
		mapping.ValueToSQLNullString(m.PostalCode()),
		mapping.ValueToSQLNullString(m.Province()),
		mapping.ValueToSQLNullString(m.Country()),
		mapping.PointerToSQLNullTime(m.BirthDate()),
		m.DuesPaid(),
		mapping.ValueToSQLNullString(m.Note()),
		m.CreatedAt(),
		m.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert member")
	}
	return m, nil
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) (*member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		memberUpdateQuery,
		m.FirstName(),
		m.LastName(),
		mapping.ValueToSQLNullString(m.Phone()),
		mapping.ValueToSQLNullString(m.Email()),
		mapping.ValueToSQLNullString(m.Address()),
		mapping.ValueToSQLNullString(m.StreetNumber()),
		mapping.ValueToSQLNullString(m.Floor()),
		mapping.ValueToSQLNullString(m.Stair()),
		mapping.ValueToSQLNullString(m.PostalCode()),
		mapping.ValueToSQLNullString(m.Province()),
		mapping.ValueToSQLNullString(m.Country()),
		mapping.PointerToSQLNullTime(m.BirthDate()),
		m.DuesPaid(),
		mapping.ValueToSQLNullString(m.Note()),
		m.UpdatedAt(),
		m.ID().String(),
		m.TenantID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update member")
	}
	return m, nil
}

func (r *MemberRepository) queryMembers(ctx context.Context, query string, args ...interface{}) ([]*member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var members []*member.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Number,
			&m.FirstName,
			&m.LastName,
			&m.Phone,
			&m.Email,
			&m.Address,
			&m.StreetNumber,
			&m.Floor,
			&m.Stair,
			&m.PostalCode,
			&m.Province,
			&m.Country,
			&m.BirthDate,
			&m.DuesPaid,
			&m.Note,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan member row")
		}
		members = append(members, toDomainMember(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return members, nil
}
