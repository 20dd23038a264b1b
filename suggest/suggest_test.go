package suggest

import (
	"context"
	"testing"

	"github.com/Dynom/eri-tools/types"
)

func TestSuggester_Suggest(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("Unable to create suggester %s", err)
	}

	tests := []struct {
		email  string
		want   string
		wantOK bool
	}{
		{email: "john@gmial.com", want: "john@gmail.com", wantOK: true},
		{email: "john@hotmial.com", want: "john@hotmail.com", wantOK: true},
		{email: "john@gmail.com", wantOK: false},
		{email: "john@GMAIL.com", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			parts, err := types.NewEmailParts(tt.email)
			if err != nil {
				t.Fatalf("Unexpected error %s", err)
			}

			got, ok := s.Suggest(context.Background(), parts)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Suggest() = %q, %t, want %q, %t", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSuggester_Suggest_customList(t *testing.T) {
	s, err := New([]string{"example.org"})
	if err != nil {
		t.Fatalf("Unable to create suggester %s", err)
	}

	got, ok := s.Suggest(context.Background(), types.NewEmailFromParts("a", "exampel.org"))
	if !ok || got != "a@example.org" {
		t.Errorf("Suggest() = %q, %t", got, ok)
	}

	if _, ok := s.Suggest(context.Background(), types.EmailParts{Local: "a"}); ok {
		t.Errorf("Didn't expect a suggestion for an empty domain")
	}
}
