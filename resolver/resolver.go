// Package resolver provides the DNS lookups needed to judge whether a domain can receive e-mail. Lookup failures are
// translated to a small set of sentinel errors, so callers can classify them without knowing the backend.
package resolver

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrNotFound is returned when the name does not exist (NXDOMAIN)
	ErrNotFound = errors.New("domain does not exist")

	// ErrNoAnswer is returned when the name exists, but has no records of the requested type
	ErrNoAnswer = errors.New("no answer")

	// ErrNoNameservers is returned when none of the nameservers produced a usable answer
	ErrNoNameservers = errors.New("no nameservers could answer the query")

	// ErrTimeout is returned when all nameservers timed out
	ErrTimeout = errors.New("dns query timed out")
)

// Resolver is the type all DNS backends must conform to
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// IsNotFound returns true when the name, or the requested records, do not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoAnswer)
}
