package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	mdns "github.com/miekg/dns"
)

const resolvConf = "/etc/resolv.conf"

// DNSConfig configures a DNSResolver
type DNSConfig struct {
	// Nameservers to query, "host" or "host:port". When empty, resolv.conf is used, falling back to public resolvers.
	Nameservers []string

	// Timeout per query, defaults to 5 seconds
	Timeout time.Duration

	// Retries is the number of additional rounds over all nameservers, defaults to 2. Use a negative value to disable
	Retries int
}

// DNSResolver talks to nameservers directly. Unlike StdResolver it can tell NXDOMAIN, empty answers and failing
// nameservers apart.
type DNSResolver struct {
	config DNSConfig
	client *mdns.Client
}

var _ Resolver = (*DNSResolver)(nil)

func NewDNSResolver(config DNSConfig) *DNSResolver {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	switch {
	case config.Retries == 0:
		config.Retries = 2
	case config.Retries < 0:
		config.Retries = 0
	}

	if len(config.Nameservers) == 0 {
		config.Nameservers = systemNameservers()
	}

	servers := make([]string, 0, len(config.Nameservers))
	for _, s := range config.Nameservers {
		servers = append(servers, withPort(s, "53"))
	}
	config.Nameservers = servers

	return &DNSResolver{
		config: config,
		client: &mdns.Client{
			Timeout: config.Timeout,
		},
	}
}

// Config returns the effective configuration
func (r *DNSResolver) Config() DNSConfig {
	return r.config
}

// LookupHost returns the IPv4 addresses of host, or the IPv6 addresses if it has none.
func (r *DNSResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	var addrs []string
	for _, qtype := range []uint16{mdns.TypeA, mdns.TypeAAAA} {
		resp, err := r.query(ctx, host, qtype)
		if err != nil {
			return nil, err
		}

		for _, rr := range resp.Answer {
			switch v := rr.(type) {
			case *mdns.A:
				addrs = append(addrs, v.A.String())
			case *mdns.AAAA:
				addrs = append(addrs, v.AAAA.String())
			}
		}

		if len(addrs) > 0 {
			return addrs, nil
		}
	}

	return nil, fmt.Errorf("%w: no address records for %q", ErrNoAnswer, host)
}

// LookupMX returns the MX records of name, sorted by preference
func (r *DNSResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	resp, err := r.query(ctx, name, mdns.TypeMX)
	if err != nil {
		return nil, err
	}

	var mxs []*net.MX
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			mxs = append(mxs, &net.MX{
				Host: mx.Mx,
				Pref: mx.Preference,
			})
		}
	}

	if len(mxs) == 0 {
		return nil, fmt.Errorf("%w: no MX records for %q", ErrNoAnswer, name)
	}

	sort.SliceStable(mxs, func(i, j int) bool {
		return mxs[i].Pref < mxs[j].Pref
	})

	return mxs, nil
}

// query asks every nameserver in turn, for 1 + Retries rounds, until one gives a definitive answer.
func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, error) {
	if name == "" || name == "." {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	allTimeouts := true

	for i := 0; i <= r.config.Retries; i++ {
		for _, server := range r.config.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, _, err := r.client.ExchangeContext(ctx, m, server)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}

				if !isTimeout(err) {
					allTimeouts = false
				}

				lastErr = fmt.Errorf("%s: %w", server, err)
				continue
			}

			switch resp.Rcode {
			case mdns.RcodeSuccess:
				return resp, nil
			case mdns.RcodeNameError:
				return nil, fmt.Errorf("%w: %s", ErrNotFound, mdns.Fqdn(name))
			}

			allTimeouts = false
			lastErr = fmt.Errorf("%s answered %s", server, mdns.RcodeToString[resp.Rcode])
		}
	}

	if lastErr != nil && allTimeouts {
		return nil, fmt.Errorf("%w: %s", ErrTimeout, lastErr)
	}

	return nil, fmt.Errorf("%w: %v", ErrNoNameservers, lastErr)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func systemNameservers() []string {
	conf, err := mdns.ClientConfigFromFile(resolvConf)
	if err != nil || len(conf.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}

	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, withPort(s, conf.Port))
	}

	return servers
}

// withPort adds the port, unless the address already has one
func withPort(addr, port string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}

	return net.JoinHostPort(addr, port)
}
