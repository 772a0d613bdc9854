package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

func flatRow(orderID int64, name string, date time.Time, item string, price, count int64) types.OrderFlatRow {
	return types.OrderFlatRow{
		OrderID:     orderID,
		Name:        name,
		OrderDate:   date,
		OrderStatus: domain.StatusOrder,
		Address:     types.Address{City: "Seoul", Street: "32", Zipcode: "1323"},
		ItemName:    item,
		OrderPrice:  price,
		Count:       count,
	}
}

func TestReduceFlat_GroupsByOrderInFirstOccurrenceOrder(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []types.OrderFlatRow{
		flatRow(7, "userB", date, "SPRING1 BOOK", 30000, 3),
		flatRow(4, "userA", date, "JPA1 BOOK", 10000, 1),
		flatRow(7, "userB", date, "SPRING2 BOOK", 40000, 4),
		flatRow(4, "userA", date, "JPA2 BOOK", 20000, 2),
	}

	got := ReduceFlat(rows)

	require.Len(t, got, 2)
	assert.EqualValues(t, 7, got[0].OrderID)
	assert.EqualValues(t, 4, got[1].OrderID)
	assert.Equal(t, []types.OrderItemSummary{
		{ItemName: "SPRING1 BOOK", OrderPrice: 30000, Count: 3},
		{ItemName: "SPRING2 BOOK", OrderPrice: 40000, Count: 4},
	}, got[0].OrderItems)
	assert.Equal(t, []types.OrderItemSummary{
		{ItemName: "JPA1 BOOK", OrderPrice: 10000, Count: 1},
		{ItemName: "JPA2 BOOK", OrderPrice: 20000, Count: 2},
	}, got[1].OrderItems)
	assert.Equal(t, "userB", got[0].Name)
	assert.Equal(t, types.Address{City: "Seoul", Street: "32", Zipcode: "1323"}, got[1].Address)
}

func TestReduceFlat_KeyIsStructural(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	seoul := date.In(time.FixedZone("KST", 9*60*60))
	rows := []types.OrderFlatRow{
		flatRow(1, "userA", date, "a", 1, 1),
		flatRow(1, "userA", seoul, "b", 1, 1),
		flatRow(1, "renamed", date, "c", 1, 1),
	}

	got := ReduceFlat(rows)

	require.Len(t, got, 2)
	assert.Len(t, got[0].OrderItems, 2)
	assert.Len(t, got[1].OrderItems, 1)
	assert.Equal(t, "renamed", got[1].Name)
}

func TestReduceFlat_Empty(t *testing.T) {
	got := ReduceFlat(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
