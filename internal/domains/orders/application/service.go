package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

// Service orchestrates order commands. Every command is one unit of work.
type Service struct {
	orders      ports.Repository
	members     ports.MemberReader
	items       ports.ItemStock
	tx          ports.Transactor
	idempotency ports.IdempotencyStore
}

// ServiceOption configures optional collaborators of the service.
type ServiceOption func(*Service)

// WithIdempotencyStore makes placements carrying an idempotency key replay
// the first order placed under that key.
func WithIdempotencyStore(store ports.IdempotencyStore) ServiceOption {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(orders ports.Repository, members ports.MemberReader, items ports.ItemStock, tx ports.Transactor, opts ...ServiceOption) *Service {
	s := &Service{orders: orders, members: members, items: items, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder creates an order for a member. The delivery goes to the member's
// address and each line snapshots the item's current price. Stock is taken
// from every item; any failure leaves storage untouched.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlaceOrderResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" && s.idempotency != nil {
		hash, err := FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		if result, err := s.replay(ctx, key, requestHash); err != nil || result != nil {
			return result, mapError(err)
		}
	}
	var orderID int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.members.GetByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		// lines naming the same item share one loaded item so stock is checked cumulatively
		loaded := make(map[int64]*itemdomain.Item, len(input.Lines))
		var itemIDs []int64
		lines := make([]*domain.OrderItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			item, ok := loaded[line.ItemID]
			if !ok {
				item, err = s.items.GetByIDForUpdate(ctx, line.ItemID)
				if err != nil {
					return err
				}
				loaded[line.ItemID] = item
				itemIDs = append(itemIDs, line.ItemID)
			}
			orderItem, err := domain.NewOrderItem(item, item.Price, line.Count)
			if err != nil {
				return err
			}
			lines = append(lines, orderItem)
		}
		order, err := domain.NewOrder(member, domain.NewDelivery(member.Address), lines...)
		if err != nil {
			return err
		}
		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return err
		}
		for _, id := range itemIDs {
			if err := s.items.UpdateStock(ctx, id, loaded[id].StockQuantity); err != nil {
				return err
			}
		}
		orderID = saved.ID
		if requestHash == "" {
			return nil
		}
		return s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: requestHash, OrderID: orderID})
	})
	if errors.Is(err, ports.ErrIdempotencyKeyTaken) {
		// a concurrent request with the same key committed first
		result, replayErr := s.replay(ctx, key, requestHash)
		if replayErr != nil || result != nil {
			return result, mapError(replayErr)
		}
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &types.PlaceOrderResult{OrderID: orderID}, nil
}

func (s *Service) replay(ctx context.Context, key, requestHash string) (*types.PlaceOrderResult, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != requestHash {
		return nil, fmt.Errorf("%w: key %q was used for another order", ports.ErrIdempotencyConflict, key)
	}
	return &types.PlaceOrderResult{OrderID: record.OrderID}, nil
}

// CancelOrder cancels an order and returns its items to stock. The order row
// is locked first so two cancellations cannot both restore stock.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if _, err := s.orders.Update(ctx, order); err != nil {
			return err
		}
		// relative writes: a placement may have taken stock since the read
		for _, line := range order.Items() {
			if err := s.items.AddStock(ctx, line.ItemID, line.Count); err != nil {
				return err
			}
		}
		return nil
	})
	return mapError(err)
}

// CompleteDelivery marks an order as delivered; it can no longer be cancelled.
func (s *Service) CompleteDelivery(ctx context.Context, orderID int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.CompleteDelivery(); err != nil {
			return err
		}
		_, err = s.orders.Update(ctx, order)
		return err
	})
	return mapError(err)
}

// GetOrder returns the full projection of one order.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*types.OrderSummary, error) {
	var summary types.OrderSummary
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		summary, err = types.FromOrder(order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &summary, nil
}

var _ ports.Service = (*Service)(nil)
