package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

var _ ports.AssociationLoader = (*Loader)(nil)

// Loader resolves order associations with one query per call, except for
// LoadOrderItemsBatch which preloads catalogue items for a whole page.
type Loader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

func (l *Loader) LoadMember(ctx context.Context, memberID int64) (*memberdomain.Member, error) {
	var record memberRecord
	if err := l.first(ctx, &record, memberID, "member"); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (l *Loader) LoadDelivery(ctx context.Context, deliveryID int64) (*domain.Delivery, error) {
	var record deliveryRecord
	if err := l.first(ctx, &record, deliveryID, "delivery"); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (l *Loader) LoadOrderItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderItemRecord
	if err := postgres.Conn(ctx, l.db).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	lines := make([]*domain.OrderItem, 0, len(records))
	for i := range records {
		lines = append(lines, records[i].toDomain())
	}
	return lines, nil
}

func (l *Loader) LoadItem(ctx context.Context, itemID int64) (*itemdomain.Item, error) {
	var record itemRecord
	if err := l.first(ctx, &record, itemID, "item"); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// LoadOrderItemsBatch costs two queries: the order items of all orders, then
// the catalogue items they reference.
func (l *Loader) LoadOrderItemsBatch(ctx context.Context, orderIDs []int64) (map[int64][]*domain.OrderItem, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	out := make(map[int64][]*domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var records []orderItemRecord
	err := postgres.Conn(ctx, l.db).
		Preload("Item").
		Where(postgres.AnyInt64(l.db, "order_id", orderIDs)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	for i := range records {
		out[records[i].OrderID] = append(out[records[i].OrderID], records[i].toDomain())
	}
	return out, nil
}

func (l *Loader) first(ctx context.Context, dest any, id int64, what string) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	if err := postgres.Conn(ctx, l.db).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%s %d: %w", what, id, ports.ErrNotFound)
		}
		return err
	}
	return nil
}

func (l *Loader) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("order loader not configured")
	}
	return nil
}
