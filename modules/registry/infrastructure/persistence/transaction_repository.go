package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/civicore-hq/civicore/modules/registry/domain/aggregates/transaction"
	"github.com/civicore-hq/civicore/modules/registry/infrastructure/persistence/models"
	"github.com/civicore-hq/civicore/pkg/composables"
	"github.com/civicore-hq/civicore/pkg/mapping"
)

const (
	transactionFindQuery = `
		SELECT id, tenant_id, amount, currency, label, note, counterparty,
			transaction_date, due_date, created_at, updated_at
		FROM transactions`

	transactionInsertQuery = `
		INSERT INTO transactions (id, tenant_id, amount, currency, label, note,
			counterparty, transaction_date, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
)

type TransactionRepository struct{}

func NewTransactionRepository() transaction.Repository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]*transaction.Transaction, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tenant from context")
	}
	return r.queryTransactions(ctx, transactionFindQuery+" WHERE tenant_id = $1 ORDER BY transaction_date", tenantID.String())
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		transactionInsertQuery,
		t.ID().String(),
		t.TenantID().String(),
		t.Amount().Amount(),
		t.Amount().Currency().Code,
		t.Label(),
		mapping.ValueToSQLNullString(t.Note()),
		mapping.ValueToSQLNullString(t.Counterparty()),
		t.TransactionDate(),
		mapping.PointerToSQLNullTime(t.DueDate()),
		t.CreatedAt(),
		t.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert transaction")
	}
	return t, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*transaction.Transaction, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Amount,
			&m.Currency,
			&m.Label,
			&m.Note,
			&m.Counterparty,
			&m.TransactionDate,
			&m.DueDate,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan transaction row")
		}
		transactions = append(transactions, toDomainTransaction(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return transactions, nil
}
