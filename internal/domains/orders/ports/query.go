package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// QueryRepository reads projections straight from storage without building aggregates.
type QueryRepository interface {
	// FindSimpleSummaries selects header projections in one query.
	FindSimpleSummaries(ctx context.Context) ([]ordertypes.SimpleOrderSummary, error)
	// FindOrderHeaders selects full summaries without items, paged by order.
	FindOrderHeaders(ctx context.Context, page projection.Page) ([]ordertypes.OrderSummary, error)
	// FindOrderItems selects the item projections of one order.
	FindOrderItems(ctx context.Context, orderID int64) ([]ordertypes.OrderItemSummary, error)
	// FindOrderItemsByOrderIDs selects the item projections of many orders in one query.
	FindOrderItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]ordertypes.OrderItemRow, error)
	// FindFlatRows selects one row per order item with the header repeated.
	FindFlatRows(ctx context.Context) ([]ordertypes.OrderFlatRow, error)
}

// QueryService builds order projections. Each method is one loading strategy;
// all full-summary methods yield the same summaries for the same data.
type QueryService interface {
	// Graphs returns the matching orders with every association resolved.
	Graphs(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error)
	Lazy(ctx context.Context, search domain.OrderSearch) ([]ordertypes.OrderSummary, error)
	EagerJoin(ctx context.Context) ([]ordertypes.OrderSummary, error)
	PagedJoin(ctx context.Context, page projection.Page) ([]ordertypes.OrderSummary, error)
	ItemsPerOrder(ctx context.Context) ([]ordertypes.OrderSummary, error)
	TwoQuery(ctx context.Context, page projection.Page) ([]ordertypes.OrderSummary, error)
	Flat(ctx context.Context) ([]ordertypes.OrderSummary, error)

	// SimpleGraphs returns the matching orders with member and delivery resolved.
	SimpleGraphs(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error)
	SimpleLazy(ctx context.Context, search domain.OrderSearch) ([]ordertypes.SimpleOrderSummary, error)
	SimpleJoin(ctx context.Context, page projection.Page) ([]ordertypes.SimpleOrderSummary, error)
	SimpleDirect(ctx context.Context) ([]ordertypes.SimpleOrderSummary, error)
}
