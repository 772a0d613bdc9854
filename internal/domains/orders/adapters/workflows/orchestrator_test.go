package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
)

type fakeOrderService struct {
	calls int
	input ordertypes.PlaceOrderInput
}

func (f *fakeOrderService) PlaceOrder(_ context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlaceOrderResult, error) {
	f.calls++
	f.input = input
	return &ordertypes.PlaceOrderResult{OrderID: 42}, nil
}

func (f *fakeOrderService) CancelOrder(context.Context, int64) error      { return nil }
func (f *fakeOrderService) CompleteDelivery(context.Context, int64) error { return nil }
func (f *fakeOrderService) GetOrder(context.Context, int64) (*ordertypes.OrderSummary, error) {
	return nil, nil
}

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	svc := &fakeOrderService{}
	orchestrator := NewInlineOrderWorkflows(svc)

	input := ordertypes.PlaceOrderInput{MemberID: 1, Lines: []ordertypes.OrderLine{{ItemID: 2, Count: 3}}}
	result, err := orchestrator.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.EqualValues(t, 42, result.OrderID)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, input, svc.input)
}

func TestNilOrchestratorsFail(t *testing.T) {
	var inline *InlineOrderWorkflows
	_, err := inline.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{})
	require.Error(t, err)

	var durable *TemporalOrderWorkflows
	_, err = durable.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{})
	require.Error(t, err)
}

func TestBuildPlacementWorkflowID(t *testing.T) {
	keyed := ordertypes.PlaceOrderInput{MemberID: 1, IdempotencyKey: " key-1 "}
	assert.Equal(t, buildPlacementWorkflowID(keyed), buildPlacementWorkflowID(ordertypes.PlaceOrderInput{MemberID: 9, IdempotencyKey: "key-1"}))
	assert.Contains(t, buildPlacementWorkflowID(keyed), "order-placement-idem-")

	anon := ordertypes.PlaceOrderInput{MemberID: 1}
	assert.NotEqual(t, buildPlacementWorkflowID(anon), buildPlacementWorkflowID(anon))
}
