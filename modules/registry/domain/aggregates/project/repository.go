package project

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	GetAll(ctx context.Context) ([]*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, p *Project) (*Project, error)
}
