package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Apurer/go-gin-shop-api/internal/app/seed"
	"github.com/Apurer/go-gin-shop-api/internal/platform/dbtest"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
)

type ServerSuite struct {
	suite.Suite
	router   *gin.Engine
	orderIDs []int64
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	app := Build(Dependencies{DB: dbtest.Open(s.T()), OrderSearchLimit: 1000, DefaultPageLimit: 100})
	result, err := seed.Load(context.Background(), seed.Services{Members: app.Members, Items: app.Items, Orders: app.Orders}, nil)
	s.Require().NoError(err)
	s.orderIDs = result.OrderIDs
	s.router = app.Router("shop-api-test")
}

func (s *ServerSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out), recorder.Body.String())
	return out
}

type orderBody struct {
	OrderID     int64  `json:"orderId"`
	Name        string `json:"name"`
	OrderDate   string `json:"orderDate"`
	OrderStatus string `json:"orderStatus"`
	Address     struct {
		City    string `json:"city"`
		Street  string `json:"street"`
		Zipcode string `json:"zipcode"`
	} `json:"address"`
	OrderItems []struct {
		ItemName   string `json:"itemName"`
		OrderPrice int64  `json:"orderPrice"`
		Count      int64  `json:"count"`
	} `json:"orderItems"`
}

type problemBody struct {
	Type   string `json:"type"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (s *ServerSuite) TestOrderViewsAgreeAndReportTheirCost() {
	expectedStatements := map[string]string{
		"/api/v2/orders":   "11",
		"/api/v3/orders":   "1",
		"/api/v3.1/orders": "3",
		"/api/v4/orders":   "3",
		"/api/v5/orders":   "2",
		"/api/v6/orders":   "1",
	}
	var reference []orderBody
	for _, path := range []string{"/api/v2/orders", "/api/v3/orders", "/api/v3.1/orders", "/api/v4/orders", "/api/v5/orders", "/api/v6/orders"} {
		recorder := s.do(http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, recorder.Code, path)
		s.Equal(expectedStatements[path], recorder.Header().Get("X-Query-Count"), path)
		s.NotEmpty(recorder.Header().Get("X-Request-ID"))

		orders := decode[[]orderBody](s.T(), recorder)
		if reference == nil {
			reference = orders
			continue
		}
		s.Equal(reference, orders, path)
	}

	s.Require().Len(reference, 2)
	s.Equal("userA", reference[0].Name)
	s.Equal("ORDER", reference[0].OrderStatus)
	s.Equal("Seoul", reference[0].Address.City)
	s.Require().Len(reference[0].OrderItems, 2)
	s.Equal("JPA1 BOOK", reference[0].OrderItems[0].ItemName)
	s.EqualValues(10000, reference[0].OrderItems[0].OrderPrice)
	s.EqualValues(1, reference[0].OrderItems[0].Count)
	s.Equal("userB", reference[1].Name)
}

func (s *ServerSuite) TestPagedViews() {
	for _, path := range []string{"/api/v3.1/orders", "/api/v5/orders"} {
		recorder := s.do(http.MethodGet, path+"?offset=1&limit=1", nil)
		s.Require().Equal(http.StatusOK, recorder.Code, path)
		orders := decode[[]orderBody](s.T(), recorder)
		s.Require().Len(orders, 1, path)
		s.Equal("userB", orders[0].Name, path)
		s.Len(orders[0].OrderItems, 2, path)
	}

	recorder := s.do(http.MethodGet, "/api/v5/orders?limit=abc", nil)
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerSuite) TestSimpleOrderViews() {
	expected := map[string]string{
		"/api/v2/simple-orders": "5",
		"/api/v3/simple-orders": "1",
		"/api/v4/simple-orders": "1",
	}
	for path, statements := range expected {
		recorder := s.do(http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, recorder.Code, path)
		s.Equal(statements, recorder.Header().Get("X-Query-Count"), path)
		orders := decode[[]map[string]any](s.T(), recorder)
		s.Require().Len(orders, 2, path)
		s.Equal("userA", orders[0]["name"], path)
		s.NotContains(orders[0], "orderItems", path)
	}

	recorder := s.do(http.MethodGet, "/api/v1/simple-orders", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	entities := decode[[]map[string]any](s.T(), recorder)
	s.Require().Len(entities, 2)
	s.Contains(entities[0], "member")
	s.Contains(entities[0], "delivery")
}

func (s *ServerSuite) TestEntityExposure() {
	recorder := s.do(http.MethodGet, "/api/v1/orders", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	entities := decode[[]map[string]any](s.T(), recorder)
	s.Require().Len(entities, 2)
	s.EqualValues(50000, entities[0]["totalPrice"])
	s.Len(entities[0]["orderItems"], 2)
}

func (s *ServerSuite) TestPlaceCancelAndSearch() {
	recorder := s.do(http.MethodPost, "/api/orders", map[string]any{"memberId": 1, "itemId": 1, "count": 5})
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())
	placed := decode[map[string]int64](s.T(), recorder)
	orderID := placed["orderId"]
	s.NotZero(orderID)

	recorder = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	order := decode[orderBody](s.T(), recorder)
	s.Equal("userA", order.Name)
	s.Equal("JPA1 BOOK", order.OrderItems[0].ItemName)

	recorder = s.do(http.MethodGet, "/api/v1/items/1", nil)
	s.EqualValues(94, decode[map[string]any](s.T(), recorder)["stockQuantity"])

	recorder = s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil)
	s.Require().Equal(http.StatusNoContent, recorder.Code)

	recorder = s.do(http.MethodGet, "/api/v1/items/1", nil)
	s.EqualValues(99, decode[map[string]any](s.T(), recorder)["stockQuantity"])

	recorder = s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil)
	s.Equal(http.StatusConflict, recorder.Code)

	recorder = s.do(http.MethodGet, "/api/orders?orderStatus=CANCEL&memberName=user", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	cancelled := decode[[]orderBody](s.T(), recorder)
	s.Require().Len(cancelled, 1)
	s.Equal(orderID, cancelled[0].OrderID)

	recorder = s.do(http.MethodGet, "/api/orders?memberName=USER", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Empty(decode[[]orderBody](s.T(), recorder))

	recorder = s.do(http.MethodGet, "/api/orders?orderStatus=SHIPPED", nil)
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerSuite) TestDeliveredOrderCannotBeCancelled() {
	orderID := s.orderIDs[0]
	recorder := s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/deliver", orderID), nil)
	s.Require().Equal(http.StatusNoContent, recorder.Code)

	recorder = s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil)
	s.Require().Equal(http.StatusConflict, recorder.Code)
	s.Equal("application/problem+json", recorder.Header().Get("Content-Type"))
	problem := decode[problemBody](s.T(), recorder)
	s.Equal("/problems/conflict", problem.Type)
	s.Contains(problem.Detail, "delivered")

	recorder = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	s.Equal("ORDER", decode[orderBody](s.T(), recorder).OrderStatus)
}

func (s *ServerSuite) TestIdempotentPlacement() {
	body := map[string]any{"memberId": 1, "itemId": 1, "count": 2}
	first := s.do(http.MethodPost, "/api/orders", body, "Idempotency-Key", "portal-42")
	s.Require().Equal(http.StatusOK, first.Code, first.Body.String())
	second := s.do(http.MethodPost, "/api/orders", body, "Idempotency-Key", "portal-42")
	s.Require().Equal(http.StatusOK, second.Code, second.Body.String())
	s.Equal(decode[map[string]int64](s.T(), first)["orderId"], decode[map[string]int64](s.T(), second)["orderId"])

	recorder := s.do(http.MethodGet, "/api/v1/items/1", nil)
	s.EqualValues(97, decode[map[string]any](s.T(), recorder)["stockQuantity"])

	body["count"] = 3
	recorder = s.do(http.MethodPost, "/api/orders", body, "Idempotency-Key", "portal-42")
	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *ServerSuite) TestOrderErrors() {
	recorder := s.do(http.MethodGet, "/api/orders/999", nil)
	s.Equal(http.StatusNotFound, recorder.Code)
	missing := decode[map[string]any](s.T(), recorder)
	s.Equal("/problems/not-found", missing["type"])
	s.Equal(map[string]any{"resourceType": "order", "identifier": float64(999)}, missing["extensions"])

	recorder = s.do(http.MethodGet, "/api/orders/abc", nil)
	s.Equal(http.StatusBadRequest, recorder.Code)
	s.Equal("/problems/validation-error", decode[problemBody](s.T(), recorder).Type)

	recorder = s.do(http.MethodPost, "/api/orders", map[string]any{"memberId": 1, "itemId": 1, "count": 1000})
	s.Equal(http.StatusUnprocessableEntity, recorder.Code)

	recorder = s.do(http.MethodPost, "/api/orders", map[string]any{"memberId": 42, "itemId": 1, "count": 1})
	s.Equal(http.StatusNotFound, recorder.Code)

	recorder = s.do(http.MethodPost, "/api/orders", map[string]any{"memberId": 1})
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ServerSuite) TestMembers() {
	recorder := s.do(http.MethodPost, "/api/v2/members", map[string]any{"name": "userC", "address": map[string]string{"city": "Incheon"}})
	s.Require().Equal(http.StatusOK, recorder.Code)
	created := decode[map[string]int64](s.T(), recorder)

	recorder = s.do(http.MethodPost, "/api/v1/members", map[string]any{"name": "userC"})
	s.Equal(http.StatusConflict, recorder.Code)

	recorder = s.do(http.MethodPost, "/api/v2/members", map[string]any{"name": " "})
	s.Equal(http.StatusBadRequest, recorder.Code)

	recorder = s.do(http.MethodGet, "/api/v2/members", nil)
	s.Require().Equal(http.StatusOK, recorder.Code)
	list := decode[struct {
		Count int                 `json:"count"`
		Data  []map[string]string `json:"data"`
	}](s.T(), recorder)
	s.Equal(3, list.Count)
	s.Equal("userC", list.Data[2]["name"])

	recorder = s.do(http.MethodPut, fmt.Sprintf("/api/v2/members/%d", created["id"]), map[string]string{"name": "userD"})
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Equal("userD", decode[map[string]any](s.T(), recorder)["name"])

	recorder = s.do(http.MethodPut, fmt.Sprintf("/api/v2/members/%d", created["id"]), map[string]string{"name": "userA"})
	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *ServerSuite) TestItems() {
	recorder := s.do(http.MethodPost, "/api/v1/items", map[string]any{"name": "Go BOOK", "price": 15000, "stockQuantity": 7, "author": "gopher"})
	s.Require().Equal(http.StatusOK, recorder.Code)
	item := decode[map[string]any](s.T(), recorder)
	s.Equal("BOOK", item["kind"])
	s.Equal("gopher", item["author"])

	recorder = s.do(http.MethodPut, fmt.Sprintf("/api/v1/items/%v", item["id"]), map[string]any{"name": "Go BOOK 2nd", "price": 18000, "stockQuantity": 9})
	s.Require().Equal(http.StatusOK, recorder.Code)
	updated := decode[map[string]any](s.T(), recorder)
	s.Equal("Go BOOK 2nd", updated["name"])
	s.Equal("gopher", updated["author"])

	recorder = s.do(http.MethodGet, "/api/v1/items", nil)
	s.Len(decode[[]map[string]any](s.T(), recorder), 5)

	recorder = s.do(http.MethodPost, "/api/v1/items", map[string]any{"name": "Free", "price": -1})
	s.Equal(http.StatusBadRequest, recorder.Code)

	recorder = s.do(http.MethodGet, "/api/v1/items/77", nil)
	s.Equal(http.StatusNotFound, recorder.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := Build(Dependencies{DB: dbtest.Open(t)})
	router := app.Router("shop-api-test")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req.Header.Set("X-Request-ID", "req-123")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, "1", recorder.Header().Get("X-Query-Count"))
}

func TestUseCasesRecordMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	instruments := platformobservability.NewInMemory(nil)
	app := Build(Dependencies{DB: dbtest.Open(t), Instruments: instruments})
	ctx := context.Background()
	_, err := seed.Load(ctx, seed.Services{Members: app.Members, Items: app.Items, Orders: app.Orders}, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	app.Router("shop-api-test").ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v3/orders", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	rm, err := instruments.Collect(ctx)
	require.NoError(t, err)
	placed, ok := platformobservability.Int64Sum(rm, "orders.service.orders_placed")
	require.True(t, ok)
	assert.Equal(t, int64(2), placed)
	joined, ok := platformobservability.Int64Sum(rm, "members.service.joined")
	require.True(t, ok)
	assert.Equal(t, int64(2), joined)
	saved, ok := platformobservability.Int64Sum(rm, "items.service.items_saved")
	require.True(t, ok)
	assert.Equal(t, int64(4), saved)
}
