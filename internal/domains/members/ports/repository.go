package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
)

var (
	ErrNotFound = errors.New("member not found")
	// ErrDuplicateName is returned by repositories when the storage layer rejects
	// a second member with the same name.
	ErrDuplicateName = errors.New("member name already taken")
)

// Repository persists members.
type Repository interface {
	Save(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	FindByName(ctx context.Context, name string) ([]*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
}

// Transactor runs fn inside a single unit of work. Repositories invoked with
// the ctx passed to fn take part in that unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactor runs fn directly; useful when the repository has no transactional backend.
var NoopTransactor Transactor = noopTransactor{}

type noopTransactor struct{}

func (noopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
