package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&memberRecord{},
		&itemRecord{},
		&deliveryRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&orderIdempotencyRecord{},
	)
}

// Member schema mirrors the members adapter. The unique index backs the
// duplicate-name check done by the members service.
type memberRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name;size:255;not null;uniqueIndex"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

func (memberRecord) TableName() string { return "members" }

// Item schema is single-table: kind discriminates the variant columns.
type itemRecord struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Kind          string `gorm:"column:kind;type:varchar(16);not null;index"`
	Name          string `gorm:"column:name;not null"`
	Price         int64  `gorm:"column:price;not null"`
	StockQuantity int64  `gorm:"column:stock_quantity;not null"`
	Author        string `gorm:"column:author"`
	Isbn          string `gorm:"column:isbn"`
}

func (itemRecord) TableName() string { return "items" }

type deliveryRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
	Status  string `gorm:"column:status;type:varchar(16);not null"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

// The associations only declare foreign keys; adapters never load through them.
type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id;not null;index"`
	DeliveryID int64     `gorm:"column:delivery_id;not null;uniqueIndex"`
	OrderDate  time.Time `gorm:"column:order_date;not null"`
	Status     string    `gorm:"column:status;type:varchar(16);not null;index"`

	Member   *memberRecord   `gorm:"foreignKey:MemberID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Delivery *deliveryRecord `gorm:"foreignKey:DeliveryID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID         int64 `gorm:"primaryKey;column:id"`
	OrderID    int64 `gorm:"column:order_id;not null;index"`
	ItemID     int64 `gorm:"column:item_id;not null;index"`
	OrderPrice int64 `gorm:"column:order_price;not null"`
	Count      int64 `gorm:"column:count;not null"`

	Order *orderRecord `gorm:"foreignKey:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
	Item  *itemRecord  `gorm:"foreignKey:ItemID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Placement keys commit with the order they produced.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
