package sender

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredentials = errors.New("a bot token and a chat id are required")

	ErrFileNotFound = errors.New("file not found")
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileRead     = errors.New("unable to read file")

	// ErrTransport covers network failures and responses that can't be decoded
	ErrTransport = errors.New("transport error")

	// ErrStatus is returned for non-2xx responses
	ErrStatus = errors.New("unexpected response status")
)

// APIError is returned when the Bot API answers with "ok": false
type APIError struct {
	Code        int
	Description string

	// Body is the raw response
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bot api error %d: %s", e.Code, e.Description)
}

// DeliveryError reports the parts that failed, when sending a text in multiple parts
type DeliveryError struct {
	Failed []int // 1-indexed part numbers
	Total  int
	Errs   []error
}

func (e *DeliveryError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, n := range e.Failed {
		parts = append(parts, fmt.Sprint(n))
	}

	return fmt.Sprintf("%d of %d part(s) failed: %s", len(e.Failed), e.Total, strings.Join(parts, ", "))
}

func (e *DeliveryError) Unwrap() []error {
	return e.Errs
}
