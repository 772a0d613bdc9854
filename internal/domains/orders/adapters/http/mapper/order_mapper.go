package mapper

import (
	"time"

	itemmapper "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/http/mapper"
	membermapper "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// OrderLine is one requested line of a placement request.
type OrderLine struct {
	ItemID int64 `json:"itemId"`
	Count  int64 `json:"count"`
}

// PlaceOrderRequest accepts either a single itemId/count pair or a list of lines.
type PlaceOrderRequest struct {
	MemberID int64       `json:"memberId"`
	ItemID   int64       `json:"itemId,omitempty"`
	Count    int64       `json:"count,omitempty"`
	Lines    []OrderLine `json:"lines,omitempty"`
}

// PlaceOrderResponse carries the id of the created order.
type PlaceOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

// ToPlaceOrderInput converts the request; idempotencyKey comes from the header.
func ToPlaceOrderInput(req PlaceOrderRequest, idempotencyKey string) ordertypes.PlaceOrderInput {
	input := ordertypes.PlaceOrderInput{MemberID: req.MemberID, IdempotencyKey: idempotencyKey}
	if len(req.Lines) == 0 && (req.ItemID != 0 || req.Count != 0) {
		input.Lines = []ordertypes.OrderLine{{ItemID: req.ItemID, Count: req.Count}}
		return input
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, ordertypes.OrderLine{ItemID: line.ItemID, Count: line.Count})
	}
	return input
}

// OrderItem is an order line inside an order summary.
type OrderItem struct {
	ItemName   string `json:"itemName"`
	OrderPrice int64  `json:"orderPrice"`
	Count      int64  `json:"count"`
}

// Order is the full order projection as served to clients.
type Order struct {
	OrderID     int64                `json:"orderId"`
	Name        string               `json:"name"`
	OrderDate   time.Time            `json:"orderDate"`
	OrderStatus string               `json:"orderStatus"`
	Address     membermapper.Address `json:"address"`
	OrderItems  []OrderItem          `json:"orderItems"`
}

// SimpleOrder is the header-only projection.
type SimpleOrder struct {
	OrderID     int64                `json:"orderId"`
	Name        string               `json:"name"`
	OrderDate   time.Time            `json:"orderDate"`
	OrderStatus string               `json:"orderStatus"`
	Address     membermapper.Address `json:"address"`
}

func fromAddress(a ordertypes.Address) membermapper.Address {
	return membermapper.Address{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

func FromOrderSummary(s ordertypes.OrderSummary) Order {
	out := Order{
		OrderID:     s.OrderID,
		Name:        s.Name,
		OrderDate:   s.OrderDate,
		OrderStatus: string(s.OrderStatus),
		Address:     fromAddress(s.Address),
		OrderItems:  make([]OrderItem, 0, len(s.OrderItems)),
	}
	for _, item := range s.OrderItems {
		out.OrderItems = append(out.OrderItems, OrderItem{
			ItemName:   item.ItemName,
			OrderPrice: item.OrderPrice,
			Count:      item.Count,
		})
	}
	return out
}

func FromOrderSummaries(summaries []ordertypes.OrderSummary) []Order {
	result := make([]Order, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, FromOrderSummary(s))
	}
	return result
}

func FromSimpleSummary(s ordertypes.SimpleOrderSummary) SimpleOrder {
	return SimpleOrder{
		OrderID:     s.OrderID,
		Name:        s.Name,
		OrderDate:   s.OrderDate,
		OrderStatus: string(s.OrderStatus),
		Address:     fromAddress(s.Address),
	}
}

func FromSimpleSummaries(summaries []ordertypes.SimpleOrderSummary) []SimpleOrder {
	result := make([]SimpleOrder, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, FromSimpleSummary(s))
	}
	return result
}

// Delivery is the exposed delivery of an order entity.
type Delivery struct {
	ID      int64                `json:"id"`
	Address membermapper.Address `json:"address"`
	Status  string               `json:"status"`
}

// OrderLineEntity is an exposed order item with its catalogue item.
type OrderLineEntity struct {
	ID         int64            `json:"id"`
	Item       *itemmapper.Item `json:"item,omitempty"`
	OrderPrice int64            `json:"orderPrice"`
	Count      int64            `json:"count"`
	TotalPrice int64            `json:"totalPrice"`
}

// OrderEntity exposes the whole aggregate, the way the v1 endpoints do.
// Associations that were not loaded are left out.
type OrderEntity struct {
	ID         int64                `json:"id"`
	Member     *membermapper.Member `json:"member,omitempty"`
	Delivery   *Delivery            `json:"delivery,omitempty"`
	OrderItems []OrderLineEntity    `json:"orderItems,omitempty"`
	OrderDate  time.Time            `json:"orderDate"`
	Status     string               `json:"status"`
	TotalPrice int64                `json:"totalPrice,omitempty"`
}

func FromDomainOrder(order *orderdomain.Order) OrderEntity {
	if order == nil {
		return OrderEntity{}
	}
	out := OrderEntity{
		ID:        order.ID,
		OrderDate: order.OrderDate,
		Status:    string(order.Status),
	}
	if m := order.Member(); m != nil {
		member := membermapper.FromDomainMember(m)
		out.Member = &member
	}
	if d := order.Delivery(); d != nil {
		out.Delivery = &Delivery{
			ID:      d.ID,
			Address: membermapper.FromDomainAddress(d.Address),
			Status:  string(d.Status),
		}
	}
	if order.ItemsLoaded() {
		out.TotalPrice = order.TotalPrice()
		for _, line := range order.Items() {
			entity := OrderLineEntity{
				ID:         line.ID,
				OrderPrice: line.OrderPrice,
				Count:      line.Count,
				TotalPrice: line.TotalPrice(),
			}
			if line.Item() != nil {
				item := itemmapper.FromDomainItem(line.Item())
				entity.Item = &item
			}
			out.OrderItems = append(out.OrderItems, entity)
		}
	}
	return out
}

func FromDomainOrders(orders []*orderdomain.Order) []OrderEntity {
	result := make([]OrderEntity, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
