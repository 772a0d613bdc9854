package ports

import (
	"context"
	"errors"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyStored is returned by Save for an aggregate that was loaded
	// from storage rather than built by domain.NewOrder.
	ErrAlreadyStored = errors.New("order already stored")
	// ErrNotStored is returned by Update for an aggregate that was never saved.
	ErrNotStored = errors.New("order not stored")
)

// Repository is the order store. Each finder documents which associations
// it attaches; anything else has to be resolved through an AssociationLoader.
type Repository interface {
	// Save inserts a new order together with its delivery and order items atomically.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// Update writes the order and delivery status of a stored order.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByID returns the full aggregate: member, delivery, items and their catalogue items.
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindByIDForUpdate is FindByID holding a write lock on the order for the
	// rest of the unit of work, where the backend supports row locks.
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	// FindByFilter returns bare order headers matching search, by ID, at most limit of them.
	FindByFilter(ctx context.Context, search domain.OrderSearch, limit int) ([]*domain.Order, error)
	// FindAllWithMemberAndDelivery joins the to-one associations in one query. It pages correctly.
	FindAllWithMemberAndDelivery(ctx context.Context, page projection.Page) ([]*domain.Order, error)
	// FindAllWithItems joins the whole graph in one query and collapses the
	// repeated order rows. It cannot page.
	FindAllWithItems(ctx context.Context) ([]*domain.Order, error)
}

// AssociationLoader resolves associations one at a time, the way a lazy ORM
// proxy would. Every call may cost a query.
type AssociationLoader interface {
	LoadMember(ctx context.Context, memberID int64) (*memberdomain.Member, error)
	LoadDelivery(ctx context.Context, deliveryID int64) (*domain.Delivery, error)
	// LoadOrderItems returns the order's items without their catalogue items.
	LoadOrderItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)
	LoadItem(ctx context.Context, itemID int64) (*itemdomain.Item, error)
	// LoadOrderItemsBatch loads the items of many orders, catalogue items
	// attached, in a fixed number of queries.
	LoadOrderItemsBatch(ctx context.Context, orderIDs []int64) (map[int64][]*domain.OrderItem, error)
}

// MemberReader is the slice of the members store that orders need.
type MemberReader interface {
	GetByID(ctx context.Context, id int64) (*memberdomain.Member, error)
}

// ItemStock is the slice of the items store that orders need.
type ItemStock interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*itemdomain.Item, error)
	UpdateStock(ctx context.Context, id int64, stock int64) error
	// AddStock adds delta to the stored stock in place, whatever was read before.
	AddStock(ctx context.Context, id int64, delta int64) error
}

// Transactor runs fn inside a single unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// WithinReadOnly runs fn in a unit of work that takes no write locks.
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
