package resolver

import (
	"errors"
	"fmt"
	"net"
	"testing"
)

func Test_convertError(t *testing.T) {
	plain := errors.New("plain")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: &net.DNSError{Err: "no such host", Name: "example.invalid", IsNotFound: true}, want: ErrNotFound},
		{name: "timeout", err: &net.DNSError{Err: "i/o timeout", Name: "example.org", IsTimeout: true}, want: ErrTimeout},
		{name: "server misbehaving", err: &net.DNSError{Err: "server misbehaving", Name: "example.org", IsTemporary: true}, want: ErrNoNameservers},
		{name: "non dns error", err: plain, want: plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("convertError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nxdomain", err: ErrNotFound, want: true},
		{name: "no answer", err: ErrNoAnswer, want: true},
		{name: "wrapped", err: fmt.Errorf("lookup: %w", ErrNoAnswer), want: true},
		{name: "nameservers", err: ErrNoNameservers},
		{name: "nil", err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}
