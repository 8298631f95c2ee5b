package event

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("event not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	Create(ctx context.Context, e *Event) (*Event, error)
	Update(ctx context.Context, e *Event) (*Event, error)
}
