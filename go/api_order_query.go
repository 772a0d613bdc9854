package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// MaxPageLimit caps the limit query parameter of the paged order views.
const MaxPageLimit = 1000

// OrderQueryAPI serves the order read views. Each version uses a different
// loading strategy over the same data; see the X-Query-Count header for the
// cost of each.
type OrderQueryAPI struct {
	queries      orderports.QueryService
	defaultLimit int
}

// NewOrderQueryAPI creates the read views. defaultLimit applies when a paged
// view gets no limit.
func NewOrderQueryAPI(queries orderports.QueryService, defaultLimit int) OrderQueryAPI {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return OrderQueryAPI{queries: queries, defaultLimit: defaultLimit}
}

func (api *OrderQueryAPI) page(c *gin.Context) (projection.Page, bool) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return projection.Page{}, false
	}
	limit, ok := queryInt(c, "limit", api.defaultLimit)
	if !ok {
		return projection.Page{}, false
	}
	return projection.NewPage(offset, limit, api.defaultLimit, MaxPageLimit), true
}

// Get /api/v1/simple-orders
// Exposes order entities with member and delivery resolved one by one.
func (api *OrderQueryAPI) SimpleOrdersV1(c *gin.Context) {
	orders, err := api.queries.SimpleGraphs(c.Request.Context(), orderdomain.OrderSearch{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/v2/simple-orders
func (api *OrderQueryAPI) SimpleOrdersV2(c *gin.Context) {
	summaries, err := api.queries.SimpleLazy(c.Request.Context(), orderdomain.OrderSearch{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromSimpleSummaries(summaries))
}

// Get /api/v3/simple-orders
func (api *OrderQueryAPI) SimpleOrdersV3(c *gin.Context) {
	page, ok := api.page(c)
	if !ok {
		return
	}
	summaries, err := api.queries.SimpleJoin(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromSimpleSummaries(summaries))
}

// Get /api/v4/simple-orders
func (api *OrderQueryAPI) SimpleOrdersV4(c *gin.Context) {
	summaries, err := api.queries.SimpleDirect(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromSimpleSummaries(summaries))
}

// Get /api/v1/orders
// Exposes the whole order graph as entities.
func (api *OrderQueryAPI) OrdersV1(c *gin.Context) {
	orders, err := api.queries.Graphs(c.Request.Context(), orderdomain.OrderSearch{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/v2/orders
func (api *OrderQueryAPI) OrdersV2(c *gin.Context) {
	summaries, err := api.queries.Lazy(c.Request.Context(), orderdomain.OrderSearch{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/v3/orders
func (api *OrderQueryAPI) OrdersV3(c *gin.Context) {
	summaries, err := api.queries.EagerJoin(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/v3.1/orders
func (api *OrderQueryAPI) OrdersV31(c *gin.Context) {
	page, ok := api.page(c)
	if !ok {
		return
	}
	summaries, err := api.queries.PagedJoin(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/v4/orders
func (api *OrderQueryAPI) OrdersV4(c *gin.Context) {
	summaries, err := api.queries.ItemsPerOrder(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/v5/orders
func (api *OrderQueryAPI) OrdersV5(c *gin.Context) {
	page, ok := api.page(c)
	if !ok {
		return
	}
	summaries, err := api.queries.TwoQuery(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}

// Get /api/v6/orders
func (api *OrderQueryAPI) OrdersV6(c *gin.Context) {
	summaries, err := api.queries.Flat(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ordermapper.FromOrderSummaries(summaries))
}
