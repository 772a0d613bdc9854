package query

import (
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// flatKey is the structural identity of an order in a flat row. The date is
// compared by instant so equal timestamps in different locations group together.
type flatKey struct {
	orderID   int64
	name      string
	orderDate int64
	status    domain.Status
	address   types.Address
}

// ReduceFlat regroups flat rows into one summary per order. Groups keep the
// order in which their key first appears and items keep input order.
func ReduceFlat(rows []types.OrderFlatRow) []types.OrderSummary {
	index := make(map[flatKey]int)
	summaries := make([]types.OrderSummary, 0)
	for _, row := range rows {
		key := flatKey{
			orderID:   row.OrderID,
			name:      row.Name,
			orderDate: row.OrderDate.UnixNano(),
			status:    row.OrderStatus,
			address:   row.Address,
		}
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, types.OrderSummary{
				OrderID:     row.OrderID,
				Name:        row.Name,
				OrderDate:   row.OrderDate,
				OrderStatus: row.OrderStatus,
				Address:     row.Address,
				OrderItems:  make([]types.OrderItemSummary, 0, 1),
			})
		}
		summaries[i].OrderItems = append(summaries[i].OrderItems, types.OrderItemSummary{
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		})
	}
	return summaries
}
