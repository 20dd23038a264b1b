package validator

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/Dynom/eri-tools/resolver"
	"github.com/Dynom/eri-tools/types"
	"github.com/Dynom/eri-tools/validator/validations"
	"github.com/sirupsen/logrus"
)

// Option configures a Checker
type Option func(c *Checker)

// WithLogger sets the logger, by default nothing is logged
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithTimeout bounds every domain check. Zero leaves it to the resolver.
func WithTimeout(ttl time.Duration) Option {
	return func(c *Checker) {
		c.timeout = ttl
	}
}

// New creates a new Checker and applies any specified functional Option argument
func New(r resolver.Resolver, options ...Option) *Checker {
	if r == nil {
		r = resolver.NewStdResolver(nil)
	}

	c := &Checker{
		resolver: r,
	}

	for _, o := range options {
		o(c)
	}

	if c.logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		c.logger = l
	}

	return c
}

// Checker judges whether domains can receive e-mail, based on DNS.
type Checker struct {
	resolver resolver.Resolver
	logger   logrus.FieldLogger
	timeout  time.Duration
}

// CheckDomain resolves the domain and looks up its MX records, stopping at the first failure.
func (c *Checker) CheckDomain(ctx context.Context, domain string) DomainResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = getEarliestDeadlineCTX(ctx, c.timeout)
		defer cancel()
	}

	a := artifact{
		ctx:      ctx,
		resolver: c.resolver,
		domain:   domain,
		Timings:  make(Timings, 0, 2),
	}

	err := validateSequence(&a, []stateFn{
		normalizeDomain,
		checkDomainResolves,
		checkDomainHasMX,
	})

	result := createResult(a, err)

	log := c.logger.WithFields(logrus.Fields{
		"domain": domain,
		"kind":   result.Kind.String(),
		"steps":  validations.Flag(result.Steps).String(),
	})

	if err != nil {
		log.WithError(err).Debug("Domain check failed")
	} else {
		log.WithField("mx", a.mx).Debug("Domain check passed")
	}

	return result
}

// ProcessEmails checks every non-blank address in order. Addresses without an "@" aren't looked up.
func (c *Checker) ProcessEmails(ctx context.Context, addresses []string) []EmailCheckResult {
	results := make([]EmailCheckResult, 0, len(addresses))

	for _, address := range addresses {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}

		parts, err := types.NewEmailParts(address)
		if err != nil {
			c.logger.WithError(err).WithField("email", address).Debug("Unable to split address")

			results = append(results, EmailCheckResult{
				Email:  address,
				Domain: NoDomain,
				Status: KindInvalidEmail.Status(),
				Kind:   KindInvalidEmail,
			})
			continue
		}

		r := c.CheckDomain(ctx, parts.Domain)

		var steps = r.Steps
		steps.SetFlag(validations.FSyntax)

		var v = r.Validations
		v.SetFlag(validations.FSyntax)

		results = append(results, EmailCheckResult{
			Email:       address,
			Domain:      parts.Domain,
			Status:      r.Reason,
			Valid:       r.Valid,
			Kind:        r.Kind,
			Steps:       steps,
			Validations: v,
			Timings:     r.Timings,
		})
	}

	return results
}

func validateSequence(a *artifact, sequence []stateFn) error {
	for _, v := range sequence {
		if err := v(a); err != nil {
			return err
		}
	}

	a.Validations.MarkAsValid()
	return nil
}
