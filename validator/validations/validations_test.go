package validations

import (
	"testing"
)

func TestValidations_IsValid(t *testing.T) {
	tests := []struct {
		name string
		v    Validations
		want bool
	}{
		{want: true, name: "mega valid", v: Validations(FValid)},
		{name: "default value", v: 0},
		{name: "some flags", v: Validations(FSyntax | FDomainHasIP)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidations_MarkAs(t *testing.T) {
	v := Validations(FMXLookup)

	v.MarkAsValid()
	if !v.IsValid() || !v.HasFlag(FMXLookup) {
		t.Errorf("Expected valid with MX flag intact, got %s", v)
	}

	v.MarkAsInvalid()
	if v.IsValid() || !v.HasFlag(FMXLookup) {
		t.Errorf("Expected invalid with MX flag intact, got %s", v)
	}
}

func TestValidations_RemoveFlag(t *testing.T) {
	tests := []struct {
		name string
		v    Validations
		f    Flag
		want Validations
	}{
		{name: "Testing with zero-values"},
		{name: "Clears Single flag", v: Validations(FSyntax | FMXLookup), f: FSyntax, want: Validations(FMXLookup)},
		{name: "Doesn't clear non existing flag", v: Validations(FSyntax | FValid), f: FMXLookup, want: Validations(FSyntax | FValid)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.RemoveFlag(tt.f); got != tt.want {
				t.Errorf("RemoveFlag() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidations_IsValidationsForValidDomain(t *testing.T) {
	tests := []struct {
		name string
		v    Validations
		want bool
	}{
		{want: true, name: "resolves and has MX", v: Validations(FDomainHasIP | FMXLookup)},
		{name: "only resolves", v: Validations(FSyntax | FDomainHasIP)},
		{name: "only MX", v: Validations(FMXLookup)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValidationsForValidDomain(); got != tt.want {
				t.Errorf("IsValidationsForValidDomain() = %v, want %v", got, tt.want)
			}
		})
	}
}
