package domain

import (
	"errors"
	"fmt"
	"time"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
)

var (
	ErrNoOrderItems          = errors.New("order needs at least one item")
	ErrMissingMember         = errors.New("order needs a member")
	ErrMissingDelivery       = errors.New("order needs a delivery")
	ErrInvalidCount          = errors.New("order count must be at least 1")
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")
	ErrNotLoaded             = errors.New("order association not loaded")
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOrder  Status = "ORDER"
	StatusCancel Status = "CANCEL"
)

// ParseStatus accepts the two order states, case-sensitively.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusOrder, StatusCancel:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Order is the aggregate root. Delivery and order items are owned by the
// order; member and items are referenced by ID and attached on load.
type Order struct {
	ID         int64
	MemberID   int64
	DeliveryID int64
	OrderDate  time.Time
	Status     Status

	member   *memberdomain.Member
	delivery *Delivery
	items    []*OrderItem
}

// NewOrder is the only way to build a new order. Items must come from
// NewOrderItem, which already took their stock.
func NewOrder(member *memberdomain.Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if member == nil {
		return nil, ErrMissingMember
	}
	if delivery == nil {
		return nil, ErrMissingDelivery
	}
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}
	for _, item := range items {
		if item == nil {
			return nil, ErrNoOrderItems
		}
	}
	order := &Order{
		MemberID:  member.ID,
		OrderDate: time.Now().UTC().Truncate(time.Microsecond),
		Status:    StatusOrder,
		member:    member,
		delivery:  delivery,
		items:     append([]*OrderItem(nil), items...),
	}
	return order, nil
}

// RestoreOrder rehydrates a stored order header. Associations are attached
// separately by whoever loads them.
func RestoreOrder(id, memberID, deliveryID int64, orderDate time.Time, status Status) *Order {
	return &Order{
		ID:         id,
		MemberID:   memberID,
		DeliveryID: deliveryID,
		OrderDate:  orderDate,
		Status:     status,
	}
}

func (o *Order) Member() *memberdomain.Member { return o.member }

func (o *Order) Delivery() *Delivery { return o.delivery }

// Items returns the order items in creation order. The slice is a copy.
func (o *Order) Items() []*OrderItem {
	return append([]*OrderItem(nil), o.items...)
}

// ItemsLoaded reports whether order items have been attached.
func (o *Order) ItemsLoaded() bool { return o.items != nil }

func (o *Order) AttachMember(member *memberdomain.Member) {
	o.member = member
	if member != nil {
		o.MemberID = member.ID
	}
}

func (o *Order) AttachDelivery(delivery *Delivery) {
	o.delivery = delivery
	if delivery != nil {
		o.DeliveryID = delivery.ID
	}
}

func (o *Order) AttachItems(items []*OrderItem) {
	o.items = append(make([]*OrderItem, 0, len(items)), items...)
}

// TotalPrice sums order price times count over the order items.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, item := range o.items {
		total += item.TotalPrice()
	}
	return total
}

// Cancel moves the order to CANCEL and returns every item's count to stock.
// It needs the delivery and items with their catalogue items loaded, and it
// changes nothing when it fails.
func (o *Order) Cancel() error {
	if o.delivery == nil {
		return fmt.Errorf("%w: delivery", ErrNotLoaded)
	}
	if o.delivery.Status == DeliveryComp {
		return ErrOrderAlreadyDelivered
	}
	if o.Status == StatusCancel {
		return ErrOrderAlreadyCancelled
	}
	if !o.ItemsLoaded() {
		return fmt.Errorf("%w: order items", ErrNotLoaded)
	}
	for _, item := range o.items {
		if item.Item() == nil {
			return fmt.Errorf("%w: item %d", ErrNotLoaded, item.ItemID)
		}
	}
	for _, item := range o.items {
		if err := item.cancel(); err != nil {
			return err
		}
	}
	o.Status = StatusCancel
	return nil
}

// CompleteDelivery marks the delivery as completed. Cancelled orders are never shipped.
func (o *Order) CompleteDelivery() error {
	if o.delivery == nil {
		return fmt.Errorf("%w: delivery", ErrNotLoaded)
	}
	if o.Status == StatusCancel {
		return ErrOrderAlreadyCancelled
	}
	o.delivery.Status = DeliveryComp
	return nil
}

// OrderItem is one line of an order. OrderPrice is the price at order time.
type OrderItem struct {
	ID         int64
	ItemID     int64
	OrderPrice int64
	Count      int64

	item *itemdomain.Item
}

// NewOrderItem snapshots the price and takes count units out of the item's stock.
func NewOrderItem(item *itemdomain.Item, orderPrice, count int64) (*OrderItem, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: item", ErrNotLoaded)
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{ItemID: item.ID, OrderPrice: orderPrice, Count: count, item: item}, nil
}

// RestoreOrderItem rehydrates a stored order item.
func RestoreOrderItem(id, itemID, orderPrice, count int64) *OrderItem {
	return &OrderItem{ID: id, ItemID: itemID, OrderPrice: orderPrice, Count: count}
}

func (oi *OrderItem) Item() *itemdomain.Item { return oi.item }

func (oi *OrderItem) AttachItem(item *itemdomain.Item) {
	oi.item = item
	if item != nil {
		oi.ItemID = item.ID
	}
}

func (oi *OrderItem) TotalPrice() int64 {
	return oi.OrderPrice * oi.Count
}

func (oi *OrderItem) cancel() error {
	return oi.item.AddStock(oi.Count)
}
