package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-shop-api/internal/durable/temporal/activities/orders"
)

const (
	// PlacementWorkflowName is the public identifier for registering the workflow.
	PlacementWorkflowName = "orders.workflows.Placement"
	// PlacementTaskQueue is the queue consumed by the worker processing order workflows.
	PlacementTaskQueue = "ORDER_PLACEMENT"
)

// PlacementWorkflowInput captures the payload required to place an order.
type PlacementWorkflowInput struct {
	Command ordertypes.PlaceOrderInput
	TraceID string
}

// PlacementWorkflow places an order exactly once per workflow ID. The
// activity is not retried: placement is not idempotent by itself, the
// workflow ID is what deduplicates client retries.
func PlacementWorkflow(ctx workflow.Context, input PlacementWorkflowInput) (*ordertypes.PlaceOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	memberID := input.Command.MemberID
	logger.Info("PlacementWorkflow started", withTraceID(input.TraceID, "memberId", memberID)...)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var result ordertypes.PlaceOrderResult
	if err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input.Command).Get(ctx, &result); err != nil {
		logger.Error("PlacementWorkflow failed", withTraceID(input.TraceID, "memberId", memberID, "error", err)...)
		return nil, err
	}
	logger.Info("PlacementWorkflow completed", withTraceID(input.TraceID, "orderId", result.OrderID)...)
	return &result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
