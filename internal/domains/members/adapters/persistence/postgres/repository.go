package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists members using GORM. It joins any transaction carried by ctx.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type memberRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

func (memberRecord) TableName() string { return "members" }

// Save inserts a member without an identity and updates it otherwise.
func (r *Repository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("member is nil")
	}
	record := toRecord(member)
	db := postgres.Conn(ctx, r.db)
	var err error
	if record.ID == 0 {
		err = db.Create(&record).Error
	} else {
		result := db.Model(&memberRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
			"name":    record.Name,
			"city":    record.City,
			"street":  record.Street,
			"zipcode": record.Zipcode,
		})
		err = result.Error
		if err == nil && result.RowsAffected == 0 {
			err = ports.ErrNotFound
		}
	}
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a member by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	if err := postgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByName returns members whose name equals name exactly.
func (r *Repository) FindByName(ctx context.Context, name string) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	if err := postgres.Conn(ctx, r.db).Where("name = ?", name).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// List returns all members ordered by identifier.
func (r *Repository) List(ctx context.Context) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	if err := postgres.Conn(ctx, r.db).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("member repository not configured")
	}
	return nil
}

func toRecord(member *domain.Member) memberRecord {
	return memberRecord{
		ID:      member.ID,
		Name:    member.Name,
		City:    member.Address.City,
		Street:  member.Address.Street,
		Zipcode: member.Address.Zipcode,
	}
}

func (r memberRecord) toDomain() *domain.Member {
	return &domain.Member{
		ID:      r.ID,
		Name:    r.Name,
		Address: domain.Address{City: r.City, Street: r.Street, Zipcode: r.Zipcode},
	}
}

func toDomainList(records []memberRecord) []*domain.Member {
	members := make([]*domain.Member, 0, len(records))
	for i := range records {
		members = append(members, records[i].toDomain())
	}
	return members
}
