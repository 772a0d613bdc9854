package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
)

// Service exposes member use cases to adapters.
type Service interface {
	Join(ctx context.Context, member *domain.Member) (int64, error)
	FindMembers(ctx context.Context) ([]*domain.Member, error)
	FindOne(ctx context.Context, id int64) (*domain.Member, error)
	Update(ctx context.Context, id int64, name string) (*domain.Member, error)
}
