package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order aggregates across the orders, deliveries and
// order_items tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a new aggregate: delivery, order, then its items, in one
// transaction (the caller's when ctx carries one). Only aggregates built by
// domain.NewOrder are accepted; stored orders change through Update.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := checkNew(order); err != nil {
		return nil, err
	}
	if err := postgres.InTx(ctx, r.db, func(tx *gorm.DB) error {
		return insertOrder(tx, order)
	}); err != nil {
		return nil, err
	}
	return order, nil
}

// Update writes the order status and, when loaded, the delivery status of a
// stored order.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID == 0 {
		return nil, ports.ErrNotStored
	}
	if err := postgres.InTx(ctx, r.db, func(tx *gorm.DB) error {
		return updateOrder(tx, order)
	}); err != nil {
		return nil, err
	}
	return order, nil
}

func checkNew(order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if order.ID != 0 || order.DeliveryID != 0 {
		return ports.ErrAlreadyStored
	}
	if order.MemberID == 0 || order.Member() == nil {
		return domain.ErrMissingMember
	}
	if delivery := order.Delivery(); delivery != nil && delivery.ID != 0 {
		return ports.ErrAlreadyStored
	}
	for _, line := range order.Items() {
		if line.ID != 0 {
			return ports.ErrAlreadyStored
		}
	}
	return nil
}

func insertOrder(tx *gorm.DB, order *domain.Order) error {
	delivery := order.Delivery()
	if delivery == nil {
		return domain.ErrMissingDelivery
	}
	lines := order.Items()
	if len(lines) == 0 {
		return domain.ErrNoOrderItems
	}
	deliveryRec := deliveryRecord{
		City:    delivery.Address.City,
		Street:  delivery.Address.Street,
		Zipcode: delivery.Address.Zipcode,
		Status:  string(delivery.Status),
	}
	if err := tx.Create(&deliveryRec).Error; err != nil {
		return err
	}
	orderRec := orderRecord{
		MemberID:   order.MemberID,
		DeliveryID: deliveryRec.ID,
		OrderDate:  order.OrderDate,
		Status:     string(order.Status),
	}
	if err := tx.Create(&orderRec).Error; err != nil {
		return err
	}
	lineRecs := make([]orderItemRecord, 0, len(lines))
	for _, line := range lines {
		lineRecs = append(lineRecs, orderItemRecord{
			OrderID:    orderRec.ID,
			ItemID:     line.ItemID,
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	if err := tx.Omit(clause.Associations).Create(&lineRecs).Error; err != nil {
		return err
	}
	delivery.ID = deliveryRec.ID
	order.ID = orderRec.ID
	order.DeliveryID = deliveryRec.ID
	for i, line := range lines {
		line.ID = lineRecs[i].ID
	}
	return nil
}

func updateOrder(tx *gorm.DB, order *domain.Order) error {
	result := tx.Model(&orderRecord{}).Where("id = ?", order.ID).Update("status", string(order.Status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	delivery := order.Delivery()
	if delivery == nil {
		return nil
	}
	if delivery.ID == 0 || delivery.ID != order.DeliveryID {
		return ports.ErrNotStored
	}
	result = tx.Model(&deliveryRecord{}).Where("id = ?", delivery.ID).Update("status", string(delivery.Status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByID loads the full aggregate in one joined query.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate loads the full aggregate and, on PostgreSQL, locks the
// order row for the rest of the transaction carried by ctx. Concurrent
// cancellations of one order are serialised on that lock.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.findByID(ctx, id, postgres.IsPostgres(r.db))
}

func (r *Repository) findByID(ctx context.Context, id int64, lock bool) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := r.graphQuery(ctx).Where("o.id = ?", id)
	if lock {
		// only the order row: the outer-joined side cannot be locked
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "o"}})
	}
	var rows []graphRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	orders := collapseGraph(rows)
	if len(orders) == 0 {
		return nil, ports.ErrNotFound
	}
	return orders[0], nil
}

// FindByFilter returns order headers only. The member name matches as a
// case-sensitive substring.
func (r *Repository) FindByFilter(ctx context.Context, search domain.OrderSearch, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > domain.MaxSearchResults {
		limit = domain.MaxSearchResults
	}
	q := postgres.Conn(ctx, r.db).
		Table("orders AS o").
		Select("o.id, o.member_id, o.delivery_id, o.order_date, o.status")
	if search.Status != "" {
		q = q.Where("o.status = ?", string(search.Status))
	}
	if search.MemberName != "" {
		q = q.Joins(joinMember).Where(postgres.Contains(r.db, "m.name", search.MemberName))
	}
	var records []orderRecord
	if err := q.Order("o.id").Limit(limit).Scan(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// FindAllWithMemberAndDelivery fetch-joins the to-one associations. Items are not loaded.
func (r *Repository) FindAllWithMemberAndDelivery(ctx context.Context, page projection.Page) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := postgres.Conn(ctx, r.db).
		Table("orders AS o").
		Select(headerColumns).
		Joins(joinMember).
		Joins(joinDelivery).
		Order("o.id")
	q = applyPage(q, page)
	var rows []HeaderRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

// FindAllWithItems fetch-joins the whole graph and collapses the order rows
// the item join repeats. Paging this query would cut orders apart, so it never pages.
func (r *Repository) FindAllWithItems(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []graphRow
	if err := r.graphQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return collapseGraph(rows), nil
}

func (r *Repository) graphQuery(ctx context.Context) *gorm.DB {
	return postgres.Conn(ctx, r.db).
		Table("orders AS o").
		Select(headerColumns+", "+lineColumns).
		Joins(joinMember).
		Joins(joinDelivery).
		Joins(joinLines).
		Joins(joinItems).
		Order("o.id").
		Order("oi.id")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

func applyPage(q *gorm.DB, page projection.Page) *gorm.DB {
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	return q
}
