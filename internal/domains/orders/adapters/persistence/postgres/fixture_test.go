package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	itemstore "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/persistence/postgres"
	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberstore "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/persistence/postgres"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/query"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/platform/dbtest"
	platformpg "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

type fixture struct {
	db      *gorm.DB
	orders  *Repository
	members *memberstore.Repository
	items   *itemstore.Repository
	service *application.Service
	builder *query.Builder
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	if db == nil {
		db = dbtest.Open(t)
	}
	tx := platformpg.NewTransactor(db)
	orders := NewRepository(db)
	members := memberstore.NewRepository(db)
	items := itemstore.NewRepository(db)
	return &fixture{
		db:      db,
		orders:  orders,
		members: members,
		items:   items,
		service: application.NewService(orders, members, items, tx, application.WithIdempotencyStore(NewIdempotencyStore(db))),
		builder: query.NewBuilder(orders, NewLoader(db), NewQueryRepository(db), tx),
	}
}

func (f *fixture) member(t *testing.T, name string, address memberdomain.Address) *memberdomain.Member {
	t.Helper()
	m, err := memberdomain.NewMember(name, address)
	require.NoError(t, err)
	saved, err := f.members.Save(context.Background(), m)
	require.NoError(t, err)
	return saved
}

func (f *fixture) book(t *testing.T, name string, price, stock int64) *itemdomain.Item {
	t.Helper()
	b, err := itemdomain.NewBook(name, price, stock, "", "")
	require.NoError(t, err)
	saved, err := f.items.Save(context.Background(), b)
	require.NoError(t, err)
	return saved
}

func (f *fixture) place(t *testing.T, memberID int64, lines ...types.OrderLine) int64 {
	t.Helper()
	result, err := f.service.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: memberID, Lines: lines})
	require.NoError(t, err)
	return result.OrderID
}

type sample struct {
	userA, userB   *memberdomain.Member
	jpa1, jpa2     *itemdomain.Item
	spring1        *itemdomain.Item
	spring2        *itemdomain.Item
	orderA, orderB int64
}

// seedSample stores the two reference orders: userA buys 1 JPA1 and 2 JPA2,
// userB buys 3 SPRING1 and 4 SPRING2.
func (f *fixture) seedSample(t *testing.T) sample {
	t.Helper()
	s := sample{
		userA:   f.member(t, "userA", memberdomain.NewAddress("Seoul", "32", "1323")),
		userB:   f.member(t, "userB", memberdomain.NewAddress("Busan", "555", "5432")),
		jpa1:    f.book(t, "JPA1 BOOK", 10000, 100),
		jpa2:    f.book(t, "JPA2 BOOK", 20000, 100),
		spring1: f.book(t, "SPRING1 BOOK", 30000, 100),
		spring2: f.book(t, "SPRING2 BOOK", 40000, 100),
	}
	s.orderA = f.place(t, s.userA.ID,
		types.OrderLine{ItemID: s.jpa1.ID, Count: 1},
		types.OrderLine{ItemID: s.jpa2.ID, Count: 2})
	s.orderB = f.place(t, s.userB.ID,
		types.OrderLine{ItemID: s.spring1.ID, Count: 3},
		types.OrderLine{ItemID: s.spring2.ID, Count: 4})
	return s
}

func (f *fixture) stock(t *testing.T, itemID int64) int64 {
	t.Helper()
	item, err := f.items.GetByID(context.Background(), itemID)
	require.NoError(t, err)
	return item.StockQuantity
}

// counted runs fn with a query counter and returns how many statements it issued.
func counted(t *testing.T, fn func(ctx context.Context)) int {
	t.Helper()
	ctx, counter := platformpg.WithQueryCounter(context.Background())
	fn(ctx)
	return counter.Count()
}
