package inventory

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("inventory item not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Item, error)
	GetByName(ctx context.Context, name string) (*Item, error)
	Create(ctx context.Context, i *Item) (*Item, error)
	Update(ctx context.Context, i *Item) (*Item, error)
}
