package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/dbtest"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	member, err := domain.NewMember("userA", domain.NewAddress("Seoul", "32", "1323"))
	require.NoError(t, err)

	saved, err := repo.Save(ctx, member)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, fetched)

	_, err = repo.GetByID(ctx, saved.ID+100)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UniqueNameIndex(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Member{Name: "userA"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.Member{Name: "userA"})
	require.ErrorIs(t, err, ports.ErrDuplicateName)

	found, err := repo.FindByName(ctx, "userA")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestRepository_UpdateMissingMember(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))

	_, err := repo.Save(context.Background(), &domain.Member{ID: 9, Name: "ghost"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestService_JoinRollsBackOnDuplicate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	svc := application.NewService(repo, postgres.NewTransactor(db))
	ctx := context.Background()

	first, _ := domain.NewMember("userA", domain.Address{})
	id, err := svc.Join(ctx, first)
	require.NoError(t, err)

	fetched, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, fetched)

	dup, _ := domain.NewMember("userA", domain.NewAddress("Busan", "555", "5432"))
	_, err = svc.Join(ctx, dup)
	require.ErrorIs(t, err, application.ErrDuplicateMember)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.Address{}, all[0].Address)
}
