package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
)

var ErrNotFound = errors.New("item not found")

// Repository persists catalogue items.
type Repository interface {
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	// GetByIDForUpdate loads the item and locks its row for the rest of the
	// transaction carried by ctx where the backend supports row locks.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error)
	// UpdateStock writes only the stock quantity of an existing item.
	UpdateStock(ctx context.Context, id int64, stock int64) error
	// AddStock adds delta to the stored stock in one statement, so it never
	// overwrites a concurrent change.
	AddStock(ctx context.Context, id int64, delta int64) error
	List(ctx context.Context) ([]*domain.Item, error)
}

// Transactor runs fn inside a single unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
