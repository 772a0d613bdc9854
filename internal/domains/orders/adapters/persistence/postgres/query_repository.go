package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

var _ ports.QueryRepository = (*QueryRepository)(nil)

// QueryRepository selects order projections directly into DTO rows.
type QueryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

func (r *QueryRepository) FindSimpleSummaries(ctx context.Context) ([]types.SimpleOrderSummary, error) {
	rows, err := r.summaryRows(ctx, projection.Page{})
	if err != nil {
		return nil, err
	}
	out := make([]types.SimpleOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.SimpleOrderSummary{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: domain.Status(row.OrderStatus),
			Address:     row.address(),
		})
	}
	return out, nil
}

func (r *QueryRepository) FindOrderHeaders(ctx context.Context, page projection.Page) ([]types.OrderSummary, error) {
	rows, err := r.summaryRows(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]types.OrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.OrderSummary{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: domain.Status(row.OrderStatus),
			Address:     row.address(),
		})
	}
	return out, nil
}

func (r *QueryRepository) FindOrderItems(ctx context.Context, orderID int64) ([]types.OrderItemSummary, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []itemSummaryRow
	if err := r.itemQuery(ctx).Where("oi.order_id = ?", orderID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.OrderItemSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.summary())
	}
	return out, nil
}

func (r *QueryRepository) FindOrderItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]types.OrderItemRow, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return []types.OrderItemRow{}, nil
	}
	var rows []itemSummaryRow
	if err := r.itemQuery(ctx).Where(postgres.AnyInt64(r.db, "oi.order_id", orderIDs)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.OrderItemRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.OrderItemRow{OrderID: row.OrderID, OrderItemSummary: row.summary()})
	}
	return out, nil
}

func (r *QueryRepository) FindFlatRows(ctx context.Context) ([]types.OrderFlatRow, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []flatRow
	err := postgres.Conn(ctx, r.db).
		Table("orders AS o").
		Select(summaryColumns+", i.name AS item_name, oi.order_price, oi.count").
		Joins(joinMember).
		Joins(joinDelivery).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Order("o.id").
		Order("oi.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]types.OrderFlatRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.OrderFlatRow{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: domain.Status(row.OrderStatus),
			Address:     row.address(),
			ItemName:    row.ItemName,
			OrderPrice:  row.OrderPrice,
			Count:       row.Count,
		})
	}
	return out, nil
}

func (r *QueryRepository) summaryRows(ctx context.Context, page projection.Page) ([]SummaryRow, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := postgres.Conn(ctx, r.db).
		Table("orders AS o").
		Select(summaryColumns).
		Joins(joinMember).
		Joins(joinDelivery).
		Order("o.id")
	var rows []SummaryRow
	if err := applyPage(q, page).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *QueryRepository) itemQuery(ctx context.Context) *gorm.DB {
	return postgres.Conn(ctx, r.db).
		Table("order_items AS oi").
		Select(itemSummaryColumns).
		Joins("JOIN items i ON i.id = oi.item_id").
		Order("oi.id")
}

func (r *QueryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order query repository not configured")
	}
	return nil
}
