package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dynom/eri-tools/resolver"
	"github.com/Dynom/eri-tools/validator/validations"
)

// normalizeDomain prepares the domain for lookups, internationalised names are converted to punycode
func normalizeDomain(a *artifact) error {
	name, err := toASCII(a.domain)
	if err != nil {
		return ValidationError{
			Validator: "normalizeDomain",
			Kind:      KindValidationError,
			Internal:  fmt.Errorf("unable to convert %q to ASCII: %w", a.domain, err),
		}
	}

	a.lookupName = name
	return nil
}

// checkDomainResolves performs a plain host lookup. Any failure, other than an expired context, means the domain
// doesn't exist as far as we're concerned.
func checkDomainResolves(a *artifact) error {
	a.Steps.SetFlag(validations.FDomainHasIP)

	start := time.Now()
	addrs, err := a.resolver.LookupHost(a.ctx, a.lookupName)
	a.Timings.Add("LookupHost", time.Since(start))

	if err == nil && len(addrs) == 0 {
		err = resolver.ErrNoAnswer
	}

	if err != nil {
		kind := KindDomainNotFound
		if isContextError(err) {
			kind = KindValidationError
		}

		return ValidationError{
			Validator: "checkDomainResolves",
			Kind:      kind,
			Internal:  err,
		}
	}

	a.Validations.SetFlag(validations.FDomainHasIP)
	return nil
}

// checkDomainHasMX performs a DNS lookup and fetches MX records. Any record counts, null MX records included.
func checkDomainHasMX(a *artifact) error {
	a.Steps.SetFlag(validations.FMXLookup)

	start := time.Now()
	mxs, err := a.resolver.LookupMX(a.ctx, a.lookupName)
	a.Timings.Add("LookupMX", time.Since(start))

	if err == nil && len(mxs) == 0 {
		err = resolver.ErrNoAnswer
	}

	if err != nil {
		return ValidationError{
			Validator: "checkDomainHasMX",
			Kind:      classifyMXError(err),
			Internal:  err,
		}
	}

	a.mx = make([]string, 0, len(mxs))
	for _, mx := range mxs {
		a.mx = append(a.mx, strings.TrimRight(mx.Host, "."))
	}

	a.Validations.SetFlag(validations.FMXLookup)
	return nil
}

func classifyMXError(err error) Kind {
	switch {
	case isContextError(err):
		return KindValidationError
	case resolver.IsNotFound(err):
		return KindMXMissing
	case errors.Is(err, resolver.ErrNoNameservers):
		return KindNameserver
	}

	return KindValidationError
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
