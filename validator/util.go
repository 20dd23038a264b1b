package validator

import (
	"context"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// getEarliestDeadlineCTX returns a context with a deadline of ttl from now, unless the parent expires earlier
func getEarliestDeadlineCTX(parent context.Context, ttl time.Duration) (context.Context, context.CancelFunc) {
	deadline := time.Now().Add(ttl)
	if parentDeadline, set := parent.Deadline(); set && parentDeadline.Before(deadline) {
		return context.WithCancel(parent)
	}

	return context.WithDeadline(parent, deadline)
}

// toASCII converts internationalised domain names to their ASCII (punycode) form. Pure ASCII input is returned as-is.
func toASCII(domain string) (string, error) {
	if isASCII(domain) {
		return domain, nil
	}

	return idna.Lookup.ToASCII(domain)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
