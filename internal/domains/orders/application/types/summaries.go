package types

import (
	"time"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// Address is the delivery address as shown to clients.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// OrderItemSummary is one order line in a projection.
type OrderItemSummary struct {
	ItemName   string
	OrderPrice int64
	Count      int64
}

// OrderSummary is the full order projection: header plus its items.
type OrderSummary struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     Address
	OrderItems  []OrderItemSummary
}

// SimpleOrderSummary is the header-only projection used by the to-one endpoints.
type SimpleOrderSummary struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     Address
}

// OrderItemRow is an item projection tagged with the order it belongs to.
type OrderItemRow struct {
	OrderID int64
	OrderItemSummary
}

// OrderFlatRow is one row of the denormalised order x item join.
type OrderFlatRow struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus domain.Status
	Address     Address
	ItemName    string
	OrderPrice  int64
	Count       int64
}

// FromOrder projects a loaded order. Member, delivery and the item of every
// order item must be attached.
func FromOrder(order *domain.Order) (OrderSummary, error) {
	header, err := SimpleFromOrder(order)
	if err != nil {
		return OrderSummary{}, err
	}
	if !order.ItemsLoaded() {
		return OrderSummary{}, domain.ErrNotLoaded
	}
	lines := order.Items()
	summary := OrderSummary{
		OrderID:     header.OrderID,
		Name:        header.Name,
		OrderDate:   header.OrderDate,
		OrderStatus: header.OrderStatus,
		Address:     header.Address,
		OrderItems:  make([]OrderItemSummary, 0, len(lines)),
	}
	for _, line := range lines {
		if line.Item() == nil {
			return OrderSummary{}, domain.ErrNotLoaded
		}
		summary.OrderItems = append(summary.OrderItems, OrderItemSummary{
			ItemName:   line.Item().Name,
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	return summary, nil
}

// SimpleFromOrder projects the header of an order with member and delivery attached.
func SimpleFromOrder(order *domain.Order) (SimpleOrderSummary, error) {
	if order == nil || order.Member() == nil || order.Delivery() == nil {
		return SimpleOrderSummary{}, domain.ErrNotLoaded
	}
	addr := order.Delivery().Address
	return SimpleOrderSummary{
		OrderID:     order.ID,
		Name:        order.Member().Name,
		OrderDate:   order.OrderDate,
		OrderStatus: order.Status,
		Address:     Address{City: addr.City, Street: addr.Street, Zipcode: addr.Zipcode},
	}, nil
}
