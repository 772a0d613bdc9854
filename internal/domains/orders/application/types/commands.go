package types

import (
	"errors"
	"fmt"
)

var ErrEmptyOrder = errors.New("order needs at least one line")

// OrderLine asks for count units of one item.
type OrderLine struct {
	ItemID int64
	Count  int64
}

// PlaceOrderInput is the command behind order placement.
type PlaceOrderInput struct {
	MemberID int64
	Lines    []OrderLine
	// IdempotencyKey makes retries replay the first placement. Durable
	// placement also derives its workflow id from it.
	IdempotencyKey string
}

// Validate checks the command shape before any storage is touched.
func (in PlaceOrderInput) Validate() error {
	if in.MemberID <= 0 {
		return fmt.Errorf("member id must be positive, got %d", in.MemberID)
	}
	if len(in.Lines) == 0 {
		return ErrEmptyOrder
	}
	for i, line := range in.Lines {
		if line.ItemID <= 0 {
			return fmt.Errorf("line %d: item id must be positive", i)
		}
		if line.Count < 1 {
			return fmt.Errorf("line %d: count must be at least 1", i)
		}
	}
	return nil
}

// PlaceOrderResult is what placement returns, inline or through a workflow.
type PlaceOrderResult struct {
	OrderID int64
}
