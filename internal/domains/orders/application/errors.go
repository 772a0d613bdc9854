package application

import (
	"errors"
	"fmt"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals a malformed order command.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrOrderAlreadyDelivered is returned when cancelling a shipped order.
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
	// ErrInsufficientStock is returned when an order asks for more than is in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflict covers the other state transitions the order cannot take.
	ErrConflict = errors.New("order state conflict")
	// ErrMemberNotFound and ErrItemNotFound name the missing reference of a placement.
	ErrMemberNotFound = errors.New("member not found")
	ErrItemNotFound   = errors.New("item not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrOrderAlreadyDelivered):
		return fmt.Errorf("%w: %w", ErrOrderAlreadyDelivered, err)
	case errors.Is(err, itemdomain.ErrInsufficientStock):
		return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	case errors.Is(err, domain.ErrOrderAlreadyCancelled),
		errors.Is(err, ports.ErrIdempotencyConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, memberports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrMemberNotFound, err)
	case errors.Is(err, itemports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrItemNotFound, err)
	case errors.Is(err, types.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrNoOrderItems):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
