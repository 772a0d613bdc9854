package orders

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs order placement as one unit of work.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// businessErrorType tags failures a retry can never fix.
	businessErrorType = "OrderRejected"
)

// rejections name the application errors that survive the workflow boundary
// as error types.
var rejections = []struct {
	errType string
	err     error
}{
	{"MemberNotFound", ordersapp.ErrMemberNotFound},
	{"ItemNotFound", ordersapp.ErrItemNotFound},
	{"InsufficientStock", ordersapp.ErrInsufficientStock},
	{"InvalidOrder", ordersapp.ErrInvalidInput},
	{"OrderConflict", ordersapp.ErrConflict},
}

func rejectionType(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.errType
		}
	}
	return businessErrorType
}

// RejectionError rebuilds the application error behind a rejected placement.
// It reports false for error types it does not know.
func RejectionError(appErr *temporal.ApplicationError) (error, bool) {
	if appErr == nil {
		return nil, false
	}
	for _, r := range rejections {
		if appErr.Type() == r.errType {
			return fmt.Errorf("%w: %s", r.err, appErr.Message()), true
		}
	}
	return nil, false
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder places the order through the application service.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlaceOrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "memberId", input.MemberID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "memberId", input.MemberID, "lines", len(input.Lines))
	result, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "memberId", input.MemberID, "error", err)
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), rejectionType(err), err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", result.OrderID)
	return result, nil
}
