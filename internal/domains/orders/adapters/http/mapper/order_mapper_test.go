package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

func TestToPlaceOrderInput_SingleLine(t *testing.T) {
	input := ToPlaceOrderInput(PlaceOrderRequest{MemberID: 1, ItemID: 2, Count: 3}, "key")
	assert.Equal(t, int64(1), input.MemberID)
	assert.Equal(t, []ordertypes.OrderLine{{ItemID: 2, Count: 3}}, input.Lines)
	assert.Equal(t, "key", input.IdempotencyKey)
}

func TestToPlaceOrderInput_Lines(t *testing.T) {
	input := ToPlaceOrderInput(PlaceOrderRequest{MemberID: 1, Lines: []OrderLine{{ItemID: 2, Count: 1}, {ItemID: 3, Count: 2}}}, "")
	require.Len(t, input.Lines, 2)
	assert.Equal(t, int64(3), input.Lines[1].ItemID)
}

func TestOrderSummaryJSONShape(t *testing.T) {
	summary := ordertypes.OrderSummary{
		OrderID:     4,
		Name:        "userA",
		OrderDate:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		OrderStatus: orderdomain.StatusOrder,
		Address:     ordertypes.Address{City: "Seoul", Street: "32", Zipcode: "1323"},
		OrderItems:  []ordertypes.OrderItemSummary{{ItemName: "JPA1 BOOK", OrderPrice: 10000, Count: 1}},
	}

	raw, err := json.Marshal(FromOrderSummary(summary))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(4), decoded["orderId"])
	assert.Equal(t, "userA", decoded["name"])
	assert.Equal(t, "ORDER", decoded["orderStatus"])
	assert.Equal(t, "2024-01-02T03:04:05Z", decoded["orderDate"])
	assert.Equal(t, map[string]any{"city": "Seoul", "street": "32", "zipcode": "1323"}, decoded["address"])
	items := decoded["orderItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{"itemName": "JPA1 BOOK", "orderPrice": float64(10000), "count": float64(1)}, items[0])
}

func TestOrderSummaryWithoutItemsEncodesEmptyList(t *testing.T) {
	raw, err := json.Marshal(FromOrderSummary(ordertypes.OrderSummary{OrderID: 1}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orderItems":[]`)
}

func TestFromDomainOrder_OmitsUnloadedAssociations(t *testing.T) {
	order := orderdomain.RestoreOrder(7, 1, 2, time.Unix(0, 0).UTC(), orderdomain.StatusCancel)
	entity := FromDomainOrder(order)
	assert.Equal(t, int64(7), entity.ID)
	assert.Equal(t, "CANCEL", entity.Status)
	assert.Nil(t, entity.Member)
	assert.Nil(t, entity.Delivery)
	assert.Empty(t, entity.OrderItems)
}
