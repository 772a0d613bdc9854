package shopserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

// HeaderIdempotencyKey makes a retried order placement return the first order placed under the key.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderAPI wires HTTP transport with the order commands and the search view.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
	queries   orderports.QueryService
}

// NewOrderAPI creates an OrderAPI. workflows may be nil, in which case
// placement runs on the service directly.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator, queries orderports.QueryService) OrderAPI {
	return OrderAPI{service: service, workflows: workflows, queries: queries}
}

// Post /api/orders
// Places an order for a member.
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordermapper.ToPlaceOrderInput(payload, strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey)))
	result, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.PlaceOrderResponse{OrderID: result.OrderID})
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlaceOrderResult, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/orders
// Searches orders by orderStatus and memberName.
func (api *OrderAPI) SearchOrders(c *gin.Context) {
	search := orderdomain.OrderSearch{MemberName: c.Query("memberName")}
	if raw := c.Query("orderStatus"); raw != "" {
		status, err := orderdomain.ParseStatus(raw)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		search.Status = status
	}
	summaries, err := api.queries.Lazy(c.Request.Context(), search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, "order", id, err, orderports.ErrNotFound)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummary(*summary))
}

// Post /api/orders/:id/cancel
// Cancels an order and returns its items to stock.
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.CancelOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondStatus(c, http.StatusNoContent)
}

// Post /api/orders/:id/deliver
// Marks the delivery of an order complete.
func (api *OrderAPI) CompleteDelivery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.CompleteDelivery(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondStatus(c, http.StatusNoContent)
}
