package contact

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("contact not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Contact, error)
	GetByFullName(ctx context.Context, firstName, lastName string) (*Contact, error)
	Create(ctx context.Context, c *Contact) (*Contact, error)
	Update(ctx context.Context, c *Contact) (*Contact, error)
}
