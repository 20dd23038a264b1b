package validator

import (
	"errors"
	"fmt"
)

// ValidationError is returned by the individual checks. Kind is the classification, Internal the original cause
type ValidationError struct {
	Validator string
	Kind      Kind
	Internal  error
}

func (e ValidationError) Error() string {
	if e.Internal == nil {
		return fmt.Sprintf("%s: %s", e.Validator, e.Kind.Status())
	}

	return fmt.Sprintf("%s: %s: %s", e.Validator, e.Kind.Status(), e.Internal)
}

func (e ValidationError) Unwrap() error {
	return e.Internal
}

// causeMessage returns the message of the innermost cause we know of
func causeMessage(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) && ve.Internal != nil {
		return ve.Internal.Error()
	}

	return err.Error()
}
