package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every resource the shop serves.
type ApiHandleFunctions struct {
	MemberAPI     MemberAPI
	ItemAPI       ItemAPI
	OrderAPI      OrderAPI
	OrderQueryAPI OrderQueryAPI
}

// NewRouter returns a new router with the default middleware stack.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the shop routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"JoinMemberV1", http.MethodPost, "/api/v1/members", h.MemberAPI.JoinV1},
		{"JoinMemberV2", http.MethodPost, "/api/v2/members", h.MemberAPI.JoinV2},
		{"ListMembersV1", http.MethodGet, "/api/v1/members", h.MemberAPI.ListV1},
		{"ListMembersV2", http.MethodGet, "/api/v2/members", h.MemberAPI.ListV2},
		{"UpdateMemberV2", http.MethodPut, "/api/v2/members/:id", h.MemberAPI.UpdateV2},

		{"CreateItem", http.MethodPost, "/api/v1/items", h.ItemAPI.CreateItem},
		{"ListItems", http.MethodGet, "/api/v1/items", h.ItemAPI.ListItems},
		{"GetItem", http.MethodGet, "/api/v1/items/:id", h.ItemAPI.GetItem},
		{"UpdateItem", http.MethodPut, "/api/v1/items/:id", h.ItemAPI.UpdateItem},

		{"PlaceOrder", http.MethodPost, "/api/orders", h.OrderAPI.PlaceOrder},
		{"SearchOrders", http.MethodGet, "/api/orders", h.OrderAPI.SearchOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:id", h.OrderAPI.GetOrder},
		{"CancelOrder", http.MethodPost, "/api/orders/:id/cancel", h.OrderAPI.CancelOrder},
		{"CompleteDelivery", http.MethodPost, "/api/orders/:id/deliver", h.OrderAPI.CompleteDelivery},

		{"SimpleOrdersV1", http.MethodGet, "/api/v1/simple-orders", h.OrderQueryAPI.SimpleOrdersV1},
		{"SimpleOrdersV2", http.MethodGet, "/api/v2/simple-orders", h.OrderQueryAPI.SimpleOrdersV2},
		{"SimpleOrdersV3", http.MethodGet, "/api/v3/simple-orders", h.OrderQueryAPI.SimpleOrdersV3},
		{"SimpleOrdersV4", http.MethodGet, "/api/v4/simple-orders", h.OrderQueryAPI.SimpleOrdersV4},

		{"OrdersV1", http.MethodGet, "/api/v1/orders", h.OrderQueryAPI.OrdersV1},
		{"OrdersV2", http.MethodGet, "/api/v2/orders", h.OrderQueryAPI.OrdersV2},
		{"OrdersV3", http.MethodGet, "/api/v3/orders", h.OrderQueryAPI.OrdersV3},
		{"OrdersV31", http.MethodGet, "/api/v3.1/orders", h.OrderQueryAPI.OrdersV31},
		{"OrdersV4", http.MethodGet, "/api/v4/orders", h.OrderQueryAPI.OrdersV4},
		{"OrdersV5", http.MethodGet, "/api/v5/orders", h.OrderQueryAPI.OrdersV5},
		{"OrdersV6", http.MethodGet, "/api/v6/orders", h.OrderQueryAPI.OrdersV6},
	}
}
