package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

// Service exposes order commands to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlaceOrderResult, error)
	CancelOrder(ctx context.Context, orderID int64) error
	CompleteDelivery(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (*ordertypes.OrderSummary, error)
}
