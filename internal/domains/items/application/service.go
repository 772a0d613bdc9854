package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
)

// Service orchestrates catalogue use cases.
type Service struct {
	repo ports.Repository
	tx   ports.Transactor
}

func NewService(repo ports.Repository, tx ports.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateItem changes name, price and stock of a stored item in place. The
// variant and its details are left untouched.
func (s *Service) UpdateItem(ctx context.Context, id int64, name string, price, stock int64) (*domain.Item, error) {
	var updated *domain.Item
	err := s.within(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := item.Change(name, price, stock); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, item)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) FindItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) within(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTransaction(ctx, fn)
}

var _ ports.Service = (*Service)(nil)
