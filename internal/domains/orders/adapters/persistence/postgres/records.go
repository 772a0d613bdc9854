package postgres

import (
	"time"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id"`
	DeliveryID int64     `gorm:"column:delivery_id"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status"`
}

func (orderRecord) TableName() string { return "orders" }

func (r orderRecord) toDomain() *domain.Order {
	return domain.RestoreOrder(r.ID, r.MemberID, r.DeliveryID, r.OrderDate, domain.Status(r.Status))
}

type deliveryRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
	Status  string `gorm:"column:status"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

func (r deliveryRecord) toDomain() *domain.Delivery {
	return &domain.Delivery{
		ID:      r.ID,
		Address: memberdomain.Address{City: r.City, Street: r.Street, Zipcode: r.Zipcode},
		Status:  domain.DeliveryStatus(r.Status),
	}
}

type orderItemRecord struct {
	ID         int64       `gorm:"primaryKey;column:id"`
	OrderID    int64       `gorm:"column:order_id"`
	ItemID     int64       `gorm:"column:item_id"`
	OrderPrice int64       `gorm:"column:order_price"`
	Count      int64       `gorm:"column:count"`
	Item       *itemRecord `gorm:"foreignKey:ItemID"`
}

func (orderItemRecord) TableName() string { return "order_items" }

func (r orderItemRecord) toDomain() *domain.OrderItem {
	line := domain.RestoreOrderItem(r.ID, r.ItemID, r.OrderPrice, r.Count)
	if r.Item != nil {
		line.AttachItem(r.Item.toDomain())
	}
	return line
}

// memberRecord and itemRecord are read-only views of the tables owned by the
// members and items adapters.
type memberRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

func (memberRecord) TableName() string { return "members" }

func (r memberRecord) toDomain() *memberdomain.Member {
	return &memberdomain.Member{
		ID:      r.ID,
		Name:    r.Name,
		Address: memberdomain.Address{City: r.City, Street: r.Street, Zipcode: r.Zipcode},
	}
}

type itemRecord struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Kind          string `gorm:"column:kind"`
	Name          string `gorm:"column:name"`
	Price         int64  `gorm:"column:price"`
	StockQuantity int64  `gorm:"column:stock_quantity"`
	Author        string `gorm:"column:author"`
	Isbn          string `gorm:"column:isbn"`
}

func (itemRecord) TableName() string { return "items" }

func (r itemRecord) toDomain() *itemdomain.Item {
	item := &itemdomain.Item{
		ID:            r.ID,
		Kind:          itemdomain.Kind(r.Kind),
		Name:          r.Name,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
	if item.Kind == itemdomain.KindBook {
		item.Book = &itemdomain.BookDetails{Author: r.Author, Isbn: r.Isbn}
	}
	return item
}

// headerColumns selects an order joined with its member and delivery.
const headerColumns = "o.id AS order_id, o.member_id, o.delivery_id, o.order_date, o.status AS order_status, " +
	"m.name AS member_name, m.city AS member_city, m.street AS member_street, m.zipcode AS member_zipcode, " +
	"d.city AS delivery_city, d.street AS delivery_street, d.zipcode AS delivery_zipcode, d.status AS delivery_status"

// lineColumns extends headerColumns with the order item and its catalogue item.
// Order items are left joined so an order without lines still yields its header.
const lineColumns = "oi.id AS order_item_id, oi.item_id, oi.order_price, oi.count, " +
	"i.kind AS item_kind, i.name AS item_name, i.price AS item_price, i.stock_quantity AS item_stock, " +
	"i.author AS item_author, i.isbn AS item_isbn"

const (
	joinMember   = "JOIN members m ON m.id = o.member_id"
	joinDelivery = "JOIN deliveries d ON d.id = o.delivery_id"
	joinLines    = "LEFT JOIN order_items oi ON oi.order_id = o.id"
	joinItems    = "LEFT JOIN items i ON i.id = oi.item_id"
)

// HeaderRow is one order with its member and delivery. It is embedded in
// graphRow and must stay exported: GORM skips unexported embedded structs.
type HeaderRow struct {
	OrderID         int64     `gorm:"column:order_id"`
	MemberID        int64     `gorm:"column:member_id"`
	DeliveryID      int64     `gorm:"column:delivery_id"`
	OrderDate       time.Time `gorm:"column:order_date"`
	OrderStatus     string    `gorm:"column:order_status"`
	MemberName      string    `gorm:"column:member_name"`
	MemberCity      string    `gorm:"column:member_city"`
	MemberStreet    string    `gorm:"column:member_street"`
	MemberZipcode   string    `gorm:"column:member_zipcode"`
	DeliveryCity    string    `gorm:"column:delivery_city"`
	DeliveryStreet  string    `gorm:"column:delivery_street"`
	DeliveryZipcode string    `gorm:"column:delivery_zipcode"`
	DeliveryStatus  string    `gorm:"column:delivery_status"`
}

func (r HeaderRow) toDomain() *domain.Order {
	order := domain.RestoreOrder(r.OrderID, r.MemberID, r.DeliveryID, r.OrderDate, domain.Status(r.OrderStatus))
	order.AttachMember(&memberdomain.Member{
		ID:      r.MemberID,
		Name:    r.MemberName,
		Address: memberdomain.Address{City: r.MemberCity, Street: r.MemberStreet, Zipcode: r.MemberZipcode},
	})
	order.AttachDelivery(&domain.Delivery{
		ID:      r.DeliveryID,
		Address: memberdomain.Address{City: r.DeliveryCity, Street: r.DeliveryStreet, Zipcode: r.DeliveryZipcode},
		Status:  domain.DeliveryStatus(r.DeliveryStatus),
	})
	return order
}

type graphRow struct {
	HeaderRow
	OrderItemID *int64  `gorm:"column:order_item_id"`
	ItemID      *int64  `gorm:"column:item_id"`
	OrderPrice  *int64  `gorm:"column:order_price"`
	Count       *int64  `gorm:"column:count"`
	ItemKind    *string `gorm:"column:item_kind"`
	ItemName    *string `gorm:"column:item_name"`
	ItemPrice   *int64  `gorm:"column:item_price"`
	ItemStock   *int64  `gorm:"column:item_stock"`
	ItemAuthor  *string `gorm:"column:item_author"`
	ItemIsbn    *string `gorm:"column:item_isbn"`
}

// line builds the order item of the row. Rows naming the same item share one
// item instance through items, so stock changes made through one line are
// seen by every other line of the graph.
func (r graphRow) line(items map[int64]*itemdomain.Item) *domain.OrderItem {
	if r.OrderItemID == nil {
		return nil
	}
	line := domain.RestoreOrderItem(*r.OrderItemID, deref(r.ItemID), deref(r.OrderPrice), deref(r.Count))
	if r.ItemName == nil {
		return line
	}
	item, ok := items[line.ItemID]
	if !ok {
		record := itemRecord{
			ID:            line.ItemID,
			Kind:          deref(r.ItemKind),
			Name:          *r.ItemName,
			Price:         deref(r.ItemPrice),
			StockQuantity: deref(r.ItemStock),
			Author:        deref(r.ItemAuthor),
			Isbn:          deref(r.ItemIsbn),
		}
		item = record.toDomain()
		items[line.ItemID] = item
	}
	line.AttachItem(item)
	return line
}

// collapseGraph folds joined rows into one order per ID, keeping row order.
func collapseGraph(rows []graphRow) []*domain.Order {
	orders := make([]*domain.Order, 0)
	lines := make(map[int64][]*domain.OrderItem)
	seen := make(map[int64]bool)
	items := make(map[int64]*itemdomain.Item)
	for _, row := range rows {
		if !seen[row.OrderID] {
			seen[row.OrderID] = true
			orders = append(orders, row.toDomain())
		}
		if line := row.line(items); line != nil {
			lines[row.OrderID] = append(lines[row.OrderID], line)
		}
	}
	for _, order := range orders {
		order.AttachItems(lines[order.ID])
	}
	return orders
}

// SummaryRow selects the columns of a header projection. Exported for the
// same reason as HeaderRow; flatRow embeds it.
type SummaryRow struct {
	OrderID     int64     `gorm:"column:order_id"`
	Name        string    `gorm:"column:name"`
	OrderDate   time.Time `gorm:"column:order_date"`
	OrderStatus string    `gorm:"column:order_status"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	Zipcode     string    `gorm:"column:zipcode"`
}

const summaryColumns = "o.id AS order_id, m.name AS name, o.order_date, o.status AS order_status, " +
	"d.city AS city, d.street AS street, d.zipcode AS zipcode"

func (r SummaryRow) address() types.Address {
	return types.Address{City: r.City, Street: r.Street, Zipcode: r.Zipcode}
}

type itemSummaryRow struct {
	OrderID    int64  `gorm:"column:order_id"`
	ItemName   string `gorm:"column:item_name"`
	OrderPrice int64  `gorm:"column:order_price"`
	Count      int64  `gorm:"column:count"`
}

const itemSummaryColumns = "oi.order_id, i.name AS item_name, oi.order_price, oi.count"

func (r itemSummaryRow) summary() types.OrderItemSummary {
	return types.OrderItemSummary{ItemName: r.ItemName, OrderPrice: r.OrderPrice, Count: r.Count}
}

type flatRow struct {
	SummaryRow
	ItemName   string `gorm:"column:item_name"`
	OrderPrice int64  `gorm:"column:order_price"`
	Count      int64  `gorm:"column:count"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
