package member

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("member not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Member, error)
	GetByNumber(ctx context.Context, number string) (*Member, error)
	Create(ctx context.Context, m *Member) (*Member, error)
	Update(ctx context.Context, m *Member) (*Member, error)
}
