package validations

import "strings"

const (
	// Validation Flags, these flags represent successful validation steps. A domain is considered deliverable when it
	// resolves and has MX records.
	FValid       Flag = 1 << iota
	FSyntax      Flag = 1 << iota // The address could be split in a local and domain part
	FDomainHasIP Flag = 1 << iota // The domain resolves to one or more addresses
	FMXLookup    Flag = 1 << iota // The domain has MX records
)

type Flag uint8

var flagNames = []struct {
	f    Flag
	name string
}{
	{f: FValid, name: "valid"},
	{f: FSyntax, name: "syntax"},
	{f: FDomainHasIP, name: "domain_has_ip"},
	{f: FMXLookup, name: "mx_lookup"},
}

func (f Flag) String() string {
	return strings.Join(f.AsStringSlice(), ",")
}

// AsStringSlice returns the names of all flags set, lowest bit first
func (f Flag) AsStringSlice() []string {
	var result []string
	for i := 0; i < 8; i++ {
		bit := Flag(1 << i)
		if f&bit == 0 {
			continue
		}

		result = append(result, toString(bit))
	}

	return result
}

func toString(f Flag) string {
	for _, n := range flagNames {
		if n.f == f {
			return n.name
		}
	}

	return "unknown"
}
