package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
)

// Service exposes catalogue use cases to adapters.
type Service interface {
	SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, name string, price, stock int64) (*domain.Item, error)
	FindItems(ctx context.Context) ([]*domain.Item, error)
	FindOne(ctx context.Context, id int64) (*domain.Item, error)
}
