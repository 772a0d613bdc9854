package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
)

// Service orchestrates member use cases.
type Service struct {
	repo ports.Repository
	tx   ports.Transactor
}

func NewService(repo ports.Repository, tx ports.Transactor) *Service {
	if tx == nil {
		tx = ports.NoopTransactor
	}
	return &Service{repo: repo, tx: tx}
}

// Join registers a new member and returns its identifier. The name check is a
// read-then-write; the unique index on the members table catches concurrent joins.
func (s *Service) Join(ctx context.Context, member *domain.Member) (int64, error) {
	if member == nil {
		return 0, errors.New("member is nil")
	}
	if err := member.Validate(); err != nil {
		return 0, mapError(err)
	}
	var id int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNameAvailable(ctx, member.Name, 0); err != nil {
			return err
		}
		saved, err := s.repo.Save(ctx, member)
		if err != nil {
			return err
		}
		id = saved.ID
		return nil
	})
	if err != nil {
		return 0, mapError(err)
	}
	member.ID = id
	return id, nil
}

func (s *Service) FindMembers(ctx context.Context) ([]*domain.Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// Update renames an existing member.
func (s *Service) Update(ctx context.Context, id int64, name string) (*domain.Member, error) {
	var updated *domain.Member
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := member.Rename(name); err != nil {
			return err
		}
		if err := s.ensureNameAvailable(ctx, member.Name, member.ID); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, member)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) ensureNameAvailable(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if m.ID != selfID {
			return ErrDuplicateMember
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
