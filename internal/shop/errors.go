package shop

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownItem is returned for an item ID not in the catalog.
	ErrUnknownItem = errors.New("unknown shop item")

	// ErrInsufficientFunds matches every *InsufficientFundsError.
	ErrInsufficientFunds = errors.New("insufficient gems")
)

// InsufficientFundsError reports a purchase the learner cannot afford.
type InsufficientFundsError struct {
	Item    ItemID
	Price   int
	Balance int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough gems for %s: need %d more", e.Item, e.Shortfall())
}

// Shortfall is the number of gems still missing.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Price - e.Balance
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
