package transaction

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("transaction not found")

// Repository is append-only: transactions are never updated or deleted by
// the interchange engine.
type Repository interface {
	GetAll(ctx context.Context) ([]*Transaction, error)
	Create(ctx context.Context, t *Transaction) (*Transaction, error)
}
