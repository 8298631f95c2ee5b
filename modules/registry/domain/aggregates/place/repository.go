package place

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("place not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Place, error)
	GetByName(ctx context.Context, name string) (*Place, error)
	Create(ctx context.Context, p *Place) (*Place, error)
	Update(ctx context.Context, p *Place) (*Place, error)
}
