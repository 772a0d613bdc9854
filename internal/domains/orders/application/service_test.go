package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

type fakeOrders struct {
	saved   []*domain.Order
	updates int
}

func (f *fakeOrders) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order.ID != 0 {
		return nil, ports.ErrAlreadyStored
	}
	order.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, order)
	return order, nil
}

func (f *fakeOrders) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order.ID == 0 {
		return nil, ports.ErrNotStored
	}
	f.updates++
	return order, nil
}

func (f *fakeOrders) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	if id < 1 || int(id) > len(f.saved) {
		return nil, ports.ErrNotFound
	}
	return f.saved[id-1], nil
}

func (f *fakeOrders) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeOrders) FindByFilter(context.Context, domain.OrderSearch, int) ([]*domain.Order, error) {
	return nil, nil
}

func (f *fakeOrders) FindAllWithMemberAndDelivery(context.Context, projection.Page) ([]*domain.Order, error) {
	return nil, nil
}

func (f *fakeOrders) FindAllWithItems(context.Context) ([]*domain.Order, error) {
	return nil, nil
}

type fakeMembers struct{ member *memberdomain.Member }

func (f fakeMembers) GetByID(context.Context, int64) (*memberdomain.Member, error) {
	return f.member, nil
}

type fakeItems struct {
	items map[int64]*itemdomain.Item
	stock map[int64]int64
}

func (f *fakeItems) GetByIDForUpdate(_ context.Context, id int64) (*itemdomain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, itemports.ErrNotFound
	}
	copied := *item
	copied.StockQuantity = f.stock[id]
	return &copied, nil
}

func (f *fakeItems) UpdateStock(_ context.Context, id int64, stock int64) error {
	f.stock[id] = stock
	return nil
}

func (f *fakeItems) AddStock(_ context.Context, id int64, delta int64) error {
	if _, ok := f.items[id]; !ok {
		return itemports.ErrNotFound
	}
	f.stock[id] += delta
	return nil
}

type directTx struct{}

func (directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (directTx) WithinReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T, store ports.IdempotencyStore) (*Service, *fakeOrders, *fakeItems) {
	t.Helper()
	member, err := memberdomain.NewMember("userA", memberdomain.NewAddress("Seoul", "32", "1323"))
	require.NoError(t, err)
	member.ID = 1
	book, err := itemdomain.NewBook("JPA1 BOOK", 10000, 10, "", "")
	require.NoError(t, err)
	book.ID = 1

	orders := &fakeOrders{}
	items := &fakeItems{items: map[int64]*itemdomain.Item{1: book}, stock: map[int64]int64{1: 10}}
	var opts []ServiceOption
	if store != nil {
		opts = append(opts, WithIdempotencyStore(store))
	}
	return NewService(orders, fakeMembers{member: member}, items, directTx{}, opts...), orders, items
}

func TestService_PlaceOrderWithoutStoreIgnoresKey(t *testing.T) {
	svc, orders, items := newTestService(t, nil)
	input := types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 1}}, IdempotencyKey: "k"}

	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, orders.saved, 2)
	assert.Equal(t, int64(8), items.stock[1])
}

func TestService_PlaceOrderReplaysFromStore(t *testing.T) {
	store := memory.NewIdempotencyStore()
	svc, orders, items := newTestService(t, store)
	input := types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 3}}, IdempotencyKey: " k "}

	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Len(t, orders.saved, 1)
	assert.Equal(t, int64(7), items.stock[1])

	record, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, first.OrderID, record.OrderID)
}

func TestService_PlaceOrderKeyConflict(t *testing.T) {
	store := memory.NewIdempotencyStore()
	svc, _, _ := newTestService(t, store)
	input := types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 1}}, IdempotencyKey: "k"}
	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	input.Lines = []types.OrderLine{{ItemID: 1, Count: 2}}
	_, err = svc.PlaceOrder(context.Background(), input)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_PlaceOrderMapsErrors(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 9, Count: 1}}})
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 11}}})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CancelOrderAddsStockBackOnce(t *testing.T) {
	svc, orders, items := newTestService(t, nil)
	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 4}}})
	require.NoError(t, err)
	require.Equal(t, int64(6), items.stock[1])

	// stock moved by someone else between placement and cancellation
	items.stock[1] = 5

	require.NoError(t, svc.CancelOrder(ctx, placed.OrderID))
	assert.Equal(t, int64(9), items.stock[1])
	assert.Len(t, orders.saved, 1)
	assert.Equal(t, 1, orders.updates)

	assert.ErrorIs(t, svc.CancelOrder(ctx, placed.OrderID), ErrConflict)
	assert.Equal(t, int64(9), items.stock[1])
	assert.Len(t, orders.saved, 1)
}

func TestService_CompleteDeliveryUpdatesInPlace(t *testing.T) {
	svc, orders, items := newTestService(t, nil)
	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, types.PlaceOrderInput{MemberID: 1, Lines: []types.OrderLine{{ItemID: 1, Count: 1}}})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteDelivery(ctx, placed.OrderID))
	assert.Len(t, orders.saved, 1)
	assert.Equal(t, 1, orders.updates)

	assert.ErrorIs(t, svc.CancelOrder(ctx, placed.OrderID), ErrOrderAlreadyDelivered)
	assert.Equal(t, int64(9), items.stock[1])

	assert.ErrorIs(t, svc.CancelOrder(ctx, 42), ports.ErrNotFound)
}
