package core

import (
	"errors"
	"fmt"
)

var ErrNegativeAmount = errors.New("amounts must be non-negative")

// ValidationError is returned when a counter would be set to a negative value.
type ValidationError struct {
	Unit   Unit
	Amount int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s amount %d: %s", e.Unit, e.Amount, ErrNegativeAmount)
}

// Is lets callers match any ValidationError with errors.Is(err, ErrNegativeAmount).
func (e *ValidationError) Is(target error) bool {
	return target == ErrNegativeAmount
}
