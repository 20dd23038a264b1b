package validator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/Dynom/eri-tools/resolver"
	"github.com/Dynom/eri-tools/testutil"
	"github.com/Dynom/eri-tools/validator/validations"
	"github.com/sirupsen/logrus"
	testLog "github.com/sirupsen/logrus/hooks/test"
)

var mockResolver = resolver.MockResolver{
	Host: map[string][]string{
		"b.com":                 {"192.0.2.1"},
		"example.org":           {"192.0.2.2"},
		"nomx.example.org":      {"192.0.2.3"},
		"emptymx.example.org":   {"192.0.2.4"},
		"brokenns.example.org":  {"192.0.2.5"},
		"weird.example.org":     {"192.0.2.6"},
		"xn--bcher-kva.example": {"192.0.2.7"},
		"UPPER.example.org":     {"192.0.2.9"},
	},
	MX: map[string][]*net.MX{
		"b.com":                 {{Host: "mx.b.com.", Pref: 10}},
		"example.org":           {{Host: "mx1.example.org.", Pref: 10}, {Host: "mx2.example.org.", Pref: 20}},
		"emptymx.example.org":   {},
		"xn--bcher-kva.example": {{Host: "mx.xn--bcher-kva.example.", Pref: 10}},
		"UPPER.example.org":     {{Host: "mx.example.org.", Pref: 10}},
	},
	MXErr: map[string]error{
		"brokenns.example.org": fmt.Errorf("lookup: %w", resolver.ErrNoNameservers),
		"weird.example.org":    errors.New("something unexpected"),
	},
}

func TestChecker_CheckDomain(t *testing.T) {
	c := New(mockResolver)

	tests := []struct {
		name       string
		domain     string
		wantValid  bool
		wantKind   Kind
		wantReason string
	}{
		{name: "valid", domain: "example.org", wantValid: true, wantKind: KindValid, wantReason: "domain valid"},
		{name: "does not resolve", domain: "nonexistentdomain12345.ru", wantKind: KindDomainNotFound, wantReason: "domain does not exist"},
		{name: "no MX answer", domain: "nomx.example.org", wantKind: KindMXMissing, wantReason: "MX records missing or invalid"},
		{name: "zero MX records", domain: "emptymx.example.org", wantKind: KindMXMissing, wantReason: "MX records missing or invalid"},
		{name: "nameservers failing", domain: "brokenns.example.org", wantKind: KindNameserver, wantReason: "nameserver error"},
		{name: "anything else", domain: "weird.example.org", wantKind: KindValidationError, wantReason: "validation error: something unexpected"},
		{name: "IDN is converted", domain: "bücher.example", wantValid: true, wantKind: KindValid, wantReason: "domain valid"},
		{name: "case is kept", domain: "UPPER.example.org", wantValid: true, wantKind: KindValid, wantReason: "domain valid"},
		{name: "empty domain", domain: "", wantKind: KindDomainNotFound, wantReason: "domain does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.CheckDomain(context.Background(), tt.domain)

			if got.Valid != tt.wantValid {
				t.Errorf("CheckDomain() Valid = %v, want %v", got.Valid, tt.wantValid)
			}

			if got.Kind != tt.wantKind {
				t.Errorf("CheckDomain() Kind = %v, want %v", got.Kind, tt.wantKind)
			}

			if got.Reason != tt.wantReason {
				t.Errorf("CheckDomain() Reason = %q, want %q", got.Reason, tt.wantReason)
			}

			if got.Valid != got.Validations.IsValid() {
				t.Errorf("Expected Valid and Validations to agree %v %s", got.Valid, got.Validations)
			}

			if (got.Err == nil) != tt.wantValid {
				t.Errorf("Expected an error for all non-valid results, got %v", got.Err)
			}
		})
	}
}

func TestChecker_CheckDomain_validImpliesLookups(t *testing.T) {
	c := New(mockResolver)

	for domain := range mockResolver.Host {
		r := c.CheckDomain(context.Background(), domain)
		if !r.Valid {
			continue
		}

		if !r.Validations.IsValidationsForValidDomain() {
			t.Errorf("%q is valid, but the validations don't reflect that: %s", domain, r.Validations)
		}

		if len(mockResolver.MX[domain]) == 0 {
			t.Errorf("%q is valid, without any MX records", domain)
		}
	}
}

func TestChecker_CheckDomain_shortCircuits(t *testing.T) {
	c := New(mockResolver)

	r := c.CheckDomain(context.Background(), "nonexistentdomain12345.ru")
	if r.Steps.HasFlag(validations.FMXLookup) {
		t.Errorf("Didn't expect an MX lookup after the host lookup failed, steps %s", r.Steps)
	}

	if len(r.Timings) != 1 {
		t.Errorf("Expected exactly one timing, got %+v", r.Timings)
	}
}

func TestChecker_CheckDomain_context(t *testing.T) {
	ctx := testutil.NewContext(context.Background())
	ctx.SetErrEval(func(parent context.Context) error {
		return context.DeadlineExceeded
	})

	c := New(mockResolver)
	r := c.CheckDomain(ctx, "example.org")

	if r.Kind != KindValidationError {
		t.Errorf("Expected an expired context to be a validation error, got %v", r.Kind)
	}

	if !strings.HasPrefix(r.Reason, "validation error: ") {
		t.Errorf("Unexpected reason %q", r.Reason)
	}

	if !errors.Is(r.Err, context.DeadlineExceeded) {
		t.Errorf("Expected the error to wrap the context error, got %v", r.Err)
	}
}

func TestChecker_ProcessEmails(t *testing.T) {
	c := New(mockResolver)

	t.Run("scenario", func(t *testing.T) {
		results := c.ProcessEmails(context.Background(), []string{"a@b.com", "", "noatsign"})

		if len(results) != 2 {
			t.Fatalf("Expected exactly 2 results, got %d: %+v", len(results), results)
		}

		if r := results[0]; r.Email != "a@b.com" || r.Domain != "b.com" || !r.Valid || r.Status != "domain valid" {
			t.Errorf("Unexpected first result %+v", r)
		}

		if r := results[1]; r.Email != "noatsign" || r.Domain != "N/A" || r.Status != "invalid email" || r.Valid {
			t.Errorf("Unexpected second result %+v", r)
		}

		if results[1].ValidatorsRan() {
			t.Errorf("Didn't expect any validators to run for an invalid address")
		}

		if !results[0].ValidatorsRan() {
			t.Errorf("Expected validators to run for a valid address")
		}
	})

	t.Run("blanks are skipped", func(t *testing.T) {
		results := c.ProcessEmails(context.Background(), []string{" ", "\t\n", ""})
		if len(results) != 0 {
			t.Errorf("Expected no results, got %+v", results)
		}
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		results := c.ProcessEmails(context.Background(), []string{"  john@example.org \n"})
		if len(results) != 1 || results[0].Email != "john@example.org" || !results[0].Valid {
			t.Errorf("Unexpected results %+v", results)
		}
	})

	t.Run("split on the last @", func(t *testing.T) {
		results := c.ProcessEmails(context.Background(), []string{"x@a@b.example.org", "x@y@b.com"})
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %+v", results)
		}

		if results[0].Domain != "b.example.org" {
			t.Errorf("Expected the domain after the last @, got %q", results[0].Domain)
		}

		if results[1].Domain != "b.com" || !results[1].Valid {
			t.Errorf("Unexpected result %+v", results[1])
		}
	})

	t.Run("order and duplicates are preserved", func(t *testing.T) {
		input := []string{"a@b.com", "bad", "a@b.com", "x@nomx.example.org"}
		results := c.ProcessEmails(context.Background(), input)

		if len(results) != len(input) {
			t.Fatalf("Expected %d results, got %d", len(input), len(results))
		}

		for i, r := range results {
			if r.Email != input[i] {
				t.Errorf("Result %d is %q, expected %q", i, r.Email, input[i])
			}
		}
	})
}

func TestChecker_logging(t *testing.T) {
	logger, hook := testLog.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c := New(mockResolver, WithLogger(logger))
	c.CheckDomain(context.Background(), "nomx.example.org")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("Expected a log entry")
	}

	if got := entry.Data["domain"]; got != "nomx.example.org" {
		t.Errorf("Expected the domain to be logged, got %v", got)
	}

	if got := entry.Data["kind"]; got != KindMXMissing.String() {
		t.Errorf("Expected the kind to be logged, got %v", got)
	}
}

func TestWithTimeout(t *testing.T) {
	c := New(slowResolver{delay: time.Second}, WithTimeout(10*time.Millisecond))

	start := time.Now()
	r := c.CheckDomain(context.Background(), "example.org")

	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("Expected the timeout to cut the check short")
	}

	if r.Kind != KindValidationError {
		t.Errorf("Expected a validation error, got %v (%v)", r.Kind, r.Err)
	}
}

type slowResolver struct {
	delay time.Duration
}

func (s slowResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	select {
	case <-time.After(s.delay):
		return []string{"192.0.2.1"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s slowResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	return nil, resolver.ErrNoAnswer
}
