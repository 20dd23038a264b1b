package resolver

import (
	"context"
	"fmt"
	"net"
)

// MockResolver is a map backed Resolver, intended for tests. Names are used verbatim.
type MockResolver struct {
	Host map[string][]string
	MX   map[string][]*net.MX

	// HostErr and MXErr take precedence over the records
	HostErr map[string]error
	MXErr   map[string]error
}

var _ Resolver = MockResolver{}

func (m MockResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := m.HostErr[host]; ok {
		return nil, err
	}

	addrs, ok := m.Host[host]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, host)
	}

	return addrs, nil
}

func (m MockResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err, ok := m.MXErr[name]; ok {
		return nil, err
	}

	mxs, ok := m.MX[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAnswer, name)
	}

	return mxs, nil
}
