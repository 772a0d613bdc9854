package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
)

func newBook(t *testing.T, id int64, name string, price, stock int64) *itemdomain.Item {
	t.Helper()
	book, err := itemdomain.NewBook(name, price, stock, "", "")
	require.NoError(t, err)
	book.ID = id
	return book
}

func newUserA(t *testing.T) *memberdomain.Member {
	t.Helper()
	member, err := memberdomain.NewMember("userA", memberdomain.NewAddress("Seoul", "32", "1323"))
	require.NoError(t, err)
	member.ID = 1
	return member
}

func placeUserAOrder(t *testing.T) (*Order, *itemdomain.Item, *itemdomain.Item) {
	t.Helper()
	member := newUserA(t)
	jpa1 := newBook(t, 10, "JPA1 BOOK", 10000, 100)
	jpa2 := newBook(t, 11, "JPA2 BOOK", 20000, 100)

	line1, err := NewOrderItem(jpa1, jpa1.Price, 1)
	require.NoError(t, err)
	line2, err := NewOrderItem(jpa2, jpa2.Price, 2)
	require.NoError(t, err)

	order, err := NewOrder(member, NewDelivery(member.Address), line1, line2)
	require.NoError(t, err)
	return order, jpa1, jpa2
}

func TestNewOrder_WiresAggregate(t *testing.T) {
	order, jpa1, jpa2 := placeUserAOrder(t)

	assert.Equal(t, StatusOrder, order.Status)
	assert.EqualValues(t, 1, order.MemberID)
	assert.Equal(t, "userA", order.Member().Name)
	assert.Equal(t, DeliveryReady, order.Delivery().Status)
	assert.Equal(t, order.Member().Address, order.Delivery().Address)
	require.Len(t, order.Items(), 2)
	assert.Equal(t, jpa1.ID, order.Items()[0].ItemID)
	assert.Equal(t, jpa2.ID, order.Items()[1].ItemID)
	assert.False(t, order.OrderDate.IsZero())

	assert.EqualValues(t, 99, jpa1.StockQuantity)
	assert.EqualValues(t, 98, jpa2.StockQuantity)
}

func TestTotalPrice(t *testing.T) {
	order, _, _ := placeUserAOrder(t)
	assert.EqualValues(t, 10000*1+20000*2, order.TotalPrice())
}

func TestNewOrder_RequiresParts(t *testing.T) {
	member := newUserA(t)
	book := newBook(t, 1, "b", 1, 10)
	line, err := NewOrderItem(book, 1, 1)
	require.NoError(t, err)

	_, err = NewOrder(nil, NewDelivery(member.Address), line)
	require.ErrorIs(t, err, ErrMissingMember)
	_, err = NewOrder(member, nil, line)
	require.ErrorIs(t, err, ErrMissingDelivery)
	_, err = NewOrder(member, NewDelivery(member.Address))
	require.ErrorIs(t, err, ErrNoOrderItems)
}

func TestNewOrderItem_Stock(t *testing.T) {
	book := newBook(t, 1, "b", 1, 2)

	_, err := NewOrderItem(book, 1, 0)
	require.ErrorIs(t, err, ErrInvalidCount)

	_, err = NewOrderItem(book, 1, 3)
	require.ErrorIs(t, err, itemdomain.ErrInsufficientStock)
	assert.EqualValues(t, 2, book.StockQuantity)
}

func TestCancel_RestoresStock(t *testing.T) {
	book := newBook(t, 1, "b", 100, 10)
	line, err := NewOrderItem(book, book.Price, 2)
	require.NoError(t, err)
	member := newUserA(t)
	order, err := NewOrder(member, NewDelivery(member.Address), line)
	require.NoError(t, err)
	assert.EqualValues(t, 8, book.StockQuantity)

	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancel, order.Status)
	assert.EqualValues(t, 10, book.StockQuantity)

	require.ErrorIs(t, order.Cancel(), ErrOrderAlreadyCancelled)
	assert.EqualValues(t, 10, book.StockQuantity)
}

func TestCancel_DeliveredOrderIsRejected(t *testing.T) {
	order, jpa1, _ := placeUserAOrder(t)
	require.NoError(t, order.CompleteDelivery())

	require.ErrorIs(t, order.Cancel(), ErrOrderAlreadyDelivered)
	assert.Equal(t, StatusOrder, order.Status)
	assert.EqualValues(t, 99, jpa1.StockQuantity)
}

func TestCancel_NeedsLoadedAssociations(t *testing.T) {
	order := RestoreOrder(1, 1, 1, fixedOrderDate(), StatusOrder)
	require.ErrorIs(t, order.Cancel(), ErrNotLoaded)

	order.AttachDelivery(&Delivery{ID: 1, Status: DeliveryReady})
	require.ErrorIs(t, order.Cancel(), ErrNotLoaded)

	order.AttachItems([]*OrderItem{RestoreOrderItem(1, 5, 100, 1)})
	require.ErrorIs(t, order.Cancel(), ErrNotLoaded)
	assert.Equal(t, StatusOrder, order.Status)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("CANCEL")
	require.NoError(t, err)
	assert.Equal(t, StatusCancel, status)

	_, err = ParseStatus("cancel")
	require.Error(t, err)
}

func fixedOrderDate() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}
