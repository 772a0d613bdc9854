// Package query materialises order projections with different loading
// strategies. All strategies return the same summaries for the same orders;
// they differ in how many queries they issue and whether they can page.
package query

import (
	"context"
	"fmt"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// Strategy names a way of loading order summaries.
type Strategy string

const (
	// StrategyLazy loads headers, then every association one by one: 1 + members + 2*orders + items queries.
	StrategyLazy Strategy = "lazy"
	// StrategyEagerJoin joins the whole graph in one query. Cannot page.
	StrategyEagerJoin Strategy = "eager-join"
	// StrategyPagedJoin joins the to-one side and batch-loads items: 3 queries, pages.
	StrategyPagedJoin Strategy = "paged-join"
	// StrategyItemsPerOrder selects header projections, then items per order: 1 + orders queries.
	StrategyItemsPerOrder Strategy = "items-per-order"
	// StrategyTwoQuery selects header projections, then all their items at once: 2 queries, pages.
	StrategyTwoQuery Strategy = "two-query"
	// StrategyFlat selects the flat join and regroups it in memory: 1 query. Cannot page.
	StrategyFlat Strategy = "flat"
)

// Strategies lists every strategy in the order the API versions introduce them.
var Strategies = []Strategy{
	StrategyLazy,
	StrategyEagerJoin,
	StrategyPagedJoin,
	StrategyItemsPerOrder,
	StrategyTwoQuery,
	StrategyFlat,
}

// Builder turns stored orders into projections.
type Builder struct {
	orders      ports.Repository
	loader      ports.AssociationLoader
	queries     ports.QueryRepository
	tx          ports.Transactor
	searchLimit int
}

type Option func(*Builder)

// WithSearchLimit caps filtered searches below domain.MaxSearchResults.
func WithSearchLimit(limit int) Option {
	return func(b *Builder) {
		if limit > 0 && limit < domain.MaxSearchResults {
			b.searchLimit = limit
		}
	}
}

func NewBuilder(orders ports.Repository, loader ports.AssociationLoader, queries ports.QueryRepository, tx ports.Transactor, opts ...Option) *Builder {
	b := &Builder{
		orders:      orders,
		loader:      loader,
		queries:     queries,
		tx:          tx,
		searchLimit: domain.MaxSearchResults,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build dispatches to the named strategy. Search only applies to
// StrategyLazy and page only to the strategies that can page.
func (b *Builder) Build(ctx context.Context, strategy Strategy, search domain.OrderSearch, page projection.Page) ([]types.OrderSummary, error) {
	switch strategy {
	case StrategyLazy:
		return b.Lazy(ctx, search)
	case StrategyEagerJoin:
		return b.EagerJoin(ctx)
	case StrategyPagedJoin:
		return b.PagedJoin(ctx, page)
	case StrategyItemsPerOrder:
		return b.ItemsPerOrder(ctx)
	case StrategyTwoQuery:
		return b.TwoQuery(ctx, page)
	case StrategyFlat:
		return b.Flat(ctx)
	}
	return nil, fmt.Errorf("unknown projection strategy %q", strategy)
}

// Graphs loads the orders matching search and resolves every association
// lazily. The entities are returned as loaded.
func (b *Builder) Graphs(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = b.orders.FindByFilter(ctx, search, b.searchLimit)
		if err != nil {
			return err
		}
		s := newSession(b.loader)
		for _, order := range orders {
			if err := s.resolveHeader(ctx, order); err != nil {
				return err
			}
			if err := s.resolveItems(ctx, order); err != nil {
				return err
			}
		}
		return nil
	})
	return orders, err
}

// Lazy projects the orders matching search, one lazy load at a time.
func (b *Builder) Lazy(ctx context.Context, search domain.OrderSearch) ([]types.OrderSummary, error) {
	orders, err := b.Graphs(ctx, search)
	if err != nil {
		return nil, err
	}
	return summarize(orders)
}

// EagerJoin projects every order from a single fetch join.
func (b *Builder) EagerJoin(ctx context.Context) ([]types.OrderSummary, error) {
	var orders []*domain.Order
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = b.orders.FindAllWithItems(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summarize(orders)
}

// PagedJoin pages over the to-one join, then loads the page's items in a batch.
func (b *Builder) PagedJoin(ctx context.Context, page projection.Page) ([]types.OrderSummary, error) {
	var orders []*domain.Order
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = b.orders.FindAllWithMemberAndDelivery(ctx, page)
		if err != nil || len(orders) == 0 {
			return err
		}
		items, err := b.loader.LoadOrderItemsBatch(ctx, orderIDs(orders))
		if err != nil {
			return err
		}
		for _, order := range orders {
			order.AttachItems(items[order.ID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summarize(orders)
}

// ItemsPerOrder selects header projections and then the items of each order separately.
func (b *Builder) ItemsPerOrder(ctx context.Context) ([]types.OrderSummary, error) {
	var summaries []types.OrderSummary
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		summaries, err = b.queries.FindOrderHeaders(ctx, projection.Page{})
		if err != nil {
			return err
		}
		for i := range summaries {
			items, err := b.queries.FindOrderItems(ctx, summaries[i].OrderID)
			if err != nil {
				return err
			}
			summaries[i].OrderItems = append(make([]types.OrderItemSummary, 0, len(items)), items...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// TwoQuery selects a page of header projections, then all of their items in
// one query, and regroups the items under their headers.
func (b *Builder) TwoQuery(ctx context.Context, page projection.Page) ([]types.OrderSummary, error) {
	var summaries []types.OrderSummary
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		summaries, err = b.queries.FindOrderHeaders(ctx, page)
		if err != nil || len(summaries) == 0 {
			return err
		}
		ids := make([]int64, 0, len(summaries))
		for _, s := range summaries {
			ids = append(ids, s.OrderID)
		}
		rows, err := b.queries.FindOrderItemsByOrderIDs(ctx, ids)
		if err != nil {
			return err
		}
		byOrder := make(map[int64][]types.OrderItemSummary, len(summaries))
		for _, row := range rows {
			byOrder[row.OrderID] = append(byOrder[row.OrderID], row.OrderItemSummary)
		}
		for i := range summaries {
			summaries[i].OrderItems = append(make([]types.OrderItemSummary, 0, len(byOrder[summaries[i].OrderID])), byOrder[summaries[i].OrderID]...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Flat selects the denormalised join and reduces it back to one summary per order.
func (b *Builder) Flat(ctx context.Context) ([]types.OrderSummary, error) {
	var rows []types.OrderFlatRow
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = b.queries.FindFlatRows(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ReduceFlat(rows), nil
}

// SimpleGraphs loads the orders matching search with member and delivery resolved lazily.
func (b *Builder) SimpleGraphs(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = b.orders.FindByFilter(ctx, search, b.searchLimit)
		if err != nil {
			return err
		}
		s := newSession(b.loader)
		for _, order := range orders {
			if err := s.resolveHeader(ctx, order); err != nil {
				return err
			}
		}
		return nil
	})
	return orders, err
}

// SimpleLazy projects headers with member and delivery loaded per order.
func (b *Builder) SimpleLazy(ctx context.Context, search domain.OrderSearch) ([]types.SimpleOrderSummary, error) {
	orders, err := b.SimpleGraphs(ctx, search)
	if err != nil {
		return nil, err
	}
	return summarizeSimple(orders)
}

// SimpleJoin projects headers from the to-one fetch join.
func (b *Builder) SimpleJoin(ctx context.Context, page projection.Page) ([]types.SimpleOrderSummary, error) {
	var orders []*domain.Order
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = b.orders.FindAllWithMemberAndDelivery(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summarizeSimple(orders)
}

// SimpleDirect selects header projections straight from storage.
func (b *Builder) SimpleDirect(ctx context.Context) ([]types.SimpleOrderSummary, error) {
	var summaries []types.SimpleOrderSummary
	err := b.readOnly(ctx, func(ctx context.Context) error {
		var err error
		summaries, err = b.queries.FindSimpleSummaries(ctx)
		return err
	})
	return summaries, err
}

func (b *Builder) readOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.tx == nil {
		return fn(ctx)
	}
	return b.tx.WithinReadOnly(ctx, fn)
}

// session caches members and items for one build so each is loaded at most once.
type session struct {
	loader  ports.AssociationLoader
	members map[int64]*memberdomain.Member
	items   map[int64]*itemdomain.Item
}

func newSession(loader ports.AssociationLoader) *session {
	return &session{
		loader:  loader,
		members: map[int64]*memberdomain.Member{},
		items:   map[int64]*itemdomain.Item{},
	}
}

func (s *session) resolveHeader(ctx context.Context, order *domain.Order) error {
	if order.Member() == nil {
		member, ok := s.members[order.MemberID]
		if !ok {
			var err error
			member, err = s.loader.LoadMember(ctx, order.MemberID)
			if err != nil {
				return err
			}
			s.members[order.MemberID] = member
		}
		order.AttachMember(member)
	}
	if order.Delivery() == nil {
		delivery, err := s.loader.LoadDelivery(ctx, order.DeliveryID)
		if err != nil {
			return err
		}
		order.AttachDelivery(delivery)
	}
	return nil
}

func (s *session) resolveItems(ctx context.Context, order *domain.Order) error {
	if !order.ItemsLoaded() {
		lines, err := s.loader.LoadOrderItems(ctx, order.ID)
		if err != nil {
			return err
		}
		order.AttachItems(lines)
	}
	for _, line := range order.Items() {
		if line.Item() != nil {
			continue
		}
		item, ok := s.items[line.ItemID]
		if !ok {
			var err error
			item, err = s.loader.LoadItem(ctx, line.ItemID)
			if err != nil {
				return err
			}
			s.items[line.ItemID] = item
		}
		line.AttachItem(item)
	}
	return nil
}

func summarize(orders []*domain.Order) ([]types.OrderSummary, error) {
	summaries := make([]types.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summary, err := types.FromOrder(order)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", order.ID, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func summarizeSimple(orders []*domain.Order) ([]types.SimpleOrderSummary, error) {
	summaries := make([]types.SimpleOrderSummary, 0, len(orders))
	for _, order := range orders {
		summary, err := types.SimpleFromOrder(order)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", order.ID, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func orderIDs(orders []*domain.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return ids
}

var _ ports.QueryService = (*Builder)(nil)
