package application

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidAuthor) ||
		errors.Is(err, domain.ErrEmptyAuthorName) ||
		errors.Is(err, domain.ErrEmptyCategoryName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func zeroIfNilDecimal(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}

func zeroIfNilInt(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
