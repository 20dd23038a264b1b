package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// StdResolver uses the resolver of the standard library, which follows the system configuration
type StdResolver struct {
	resolver *net.Resolver
}

var _ Resolver = (*StdResolver)(nil)

// NewStdResolver creates a StdResolver, a nil argument uses net.DefaultResolver
func NewStdResolver(r *net.Resolver) *StdResolver {
	if r == nil {
		r = net.DefaultResolver
	}

	return &StdResolver{
		resolver: r,
	}
}

func (r *StdResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	addrs, err := r.resolver.LookupHost(ctx, strings.TrimSuffix(host, "."))
	if err != nil {
		return nil, convertError(err)
	}

	if len(addrs) == 0 {
		return nil, ErrNoAnswer
	}

	return addrs, nil
}

func (r *StdResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	mxs, err := r.resolver.LookupMX(ctx, strings.TrimSuffix(name, "."))
	if err != nil {
		return nil, convertError(err)
	}

	if len(mxs) == 0 {
		return nil, ErrNoAnswer
	}

	return mxs, nil
}

// convertError maps the errors of the net package on to the errors of this package, keeping the original message
func convertError(err error) error {
	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		return err
	}

	switch {
	case dnsErr.IsNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, dnsErr)
	case dnsErr.IsTimeout:
		return fmt.Errorf("%w: %w", ErrTimeout, dnsErr)
	case dnsErr.IsTemporary:
		return fmt.Errorf("%w: %w", ErrNoNameservers, dnsErr)
	}

	return err
}
