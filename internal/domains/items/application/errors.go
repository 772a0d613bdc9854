package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
)

// ErrInvalidInput signals the request violated an item invariant.
var ErrInvalidInput = errors.New("invalid item input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrInvalidKind):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
