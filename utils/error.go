package utils

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrorRecordNotFound = errors.New("record not found")

// InsufficientSavedError is returned when a withdrawal exceeds what a
// saving goal currently holds. The message is shown to the user inline.
type InsufficientSavedError struct {
	Saved decimal.Decimal
}

func (e *InsufficientSavedError) Error() string {
	return fmt.Sprintf("you only have £%s saved", e.Saved.StringFixed(2))
}

func IsInsufficientSaved(err error) bool {
	var target *InsufficientSavedError
	return errors.As(err, &target)
}
