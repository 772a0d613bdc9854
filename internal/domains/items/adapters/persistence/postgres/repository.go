package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists items in a single table keyed by kind.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
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

// Save inserts an item without an identity and updates it otherwise.
func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toRecord(item)
	db := postgres.Conn(ctx, r.db)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&itemRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"kind":           record.Kind,
		"name":           record.Name,
		"price":          record.Price,
		"stock_quantity": record.StockQuantity,
		"author":         record.Author,
		"isbn":           record.Isbn,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return record.toDomain(), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate takes a row lock on PostgreSQL. SQLite serialises writers
// through its single connection, so no lock clause is added there.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	return r.get(ctx, id, postgres.IsPostgres(r.db))
}

func (r *Repository) get(ctx context.Context, id int64, lock bool) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := postgres.Conn(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record itemRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateStock writes the stock quantity of an existing item.
func (r *Repository) UpdateStock(ctx context.Context, id int64, stock int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := postgres.Conn(ctx, r.db).Model(&itemRecord{}).Where("id = ?", id).Update("stock_quantity", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// AddStock adds delta to the stored stock quantity of an existing item.
func (r *Repository) AddStock(ctx context.Context, id int64, delta int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := postgres.Conn(ctx, r.db).Model(&itemRecord{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all items ordered by identifier.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := postgres.Conn(ctx, r.db).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("item repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	rec := itemRecord{
		ID:            item.ID,
		Kind:          string(item.Kind),
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
	}
	if item.Book != nil {
		rec.Author = item.Book.Author
		rec.Isbn = item.Book.Isbn
	}
	return rec
}

func (r itemRecord) toDomain() *domain.Item {
	item := &domain.Item{
		ID:            r.ID,
		Kind:          domain.Kind(r.Kind),
		Name:          r.Name,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
	}
	if item.Kind == domain.KindBook {
		item.Book = &domain.BookDetails{Author: r.Author, Isbn: r.Isbn}
	}
	return item
}
