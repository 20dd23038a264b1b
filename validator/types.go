package validator

import (
	"context"
	"errors"

	"github.com/Dynom/eri-tools/resolver"
	"github.com/Dynom/eri-tools/validator/validations"
)

// Kind classifies the outcome of a domain check
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValid
	KindDomainNotFound
	KindMXMissing
	KindNameserver
	KindValidationError
	KindInvalidEmail
)

const (
	// NoDomain is reported as domain for addresses that can't be split
	NoDomain = "N/A"
)

var kindStatus = map[Kind]string{
	KindValid:           "domain valid",
	KindDomainNotFound:  "domain does not exist",
	KindMXMissing:       "MX records missing or invalid",
	KindNameserver:      "nameserver error",
	KindValidationError: "validation error",
	KindInvalidEmail:    "invalid email",
}

// Status returns the human-readable description of the Kind
func (k Kind) Status() string {
	if s, ok := kindStatus[k]; ok {
		return s
	}

	return "unknown"
}

func (k Kind) String() string {
	return k.Status()
}

// DomainResult is the outcome of Checker.CheckDomain
type DomainResult struct {
	Valid  bool
	Kind   Kind
	Reason string

	// Err holds the underlying cause for all non-valid results
	Err error

	Steps       validations.Steps
	Validations validations.Validations
	Timings
}

// EmailCheckResult is the outcome of checking a single address. It's created once and not modified afterwards.
type EmailCheckResult struct {
	Email  string
	Domain string
	Status string
	Valid  bool
	Kind   Kind

	Steps       validations.Steps
	Validations validations.Validations
	Timings
}

// ValidatorsRan returns false when the address was rejected before any DNS lookup took place. In that case Valid
// carries no meaning.
func (r EmailCheckResult) ValidatorsRan() bool {
	return r.Steps.HasFlag(validations.FDomainHasIP)
}

type artifact struct {
	ctx      context.Context
	resolver resolver.Resolver

	domain      string // as given
	lookupName  string // what is sent to the resolver
	mx          []string
	Steps       validations.Steps
	Validations validations.Validations
	Timings
}

type stateFn func(a *artifact) error

func createResult(a artifact, err error) DomainResult {
	result := DomainResult{
		Steps:       a.Steps,
		Validations: a.Validations,
		Timings:     a.Timings,
		Err:         err,
	}

	if err == nil {
		result.Valid = true
		result.Kind = KindValid
		result.Reason = KindValid.Status()
		return result
	}

	result.Validations.MarkAsInvalid()
	result.Kind = KindValidationError

	var ve ValidationError
	if errors.As(err, &ve) {
		result.Kind = ve.Kind
	}

	result.Reason = result.Kind.Status()
	if result.Kind == KindValidationError {
		result.Reason += ": " + causeMessage(err)
	}

	return result
}
