package validations

import "fmt"

// Validations holds the validation steps that passed.
type Validations uint8

func (v Validations) String() string {
	return fmt.Sprintf("%08b", v)
}

// IsValid returns true if the Validations are considered successful
func (v Validations) IsValid() bool {
	return Flag(v)&FValid == FValid
}

// MarkAsInvalid clears the FValid bit and marks the Validations as invalid
func (v *Validations) MarkAsInvalid() {
	*v &^= Validations(FValid)
}

// MarkAsValid sets the FValid bit and marks the Validations as valid
func (v *Validations) MarkAsValid() {
	*v |= Validations(FValid)
}

// SetFlag defines a flag on the type and returns a copy
func (v *Validations) SetFlag(new Flag) Validations {
	*v |= Validations(new)

	return *v
}

// HasFlag returns true if the type has the flag (or flags) specified
func (v Validations) HasFlag(f Flag) bool {
	return v&Validations(f) != 0
}

// RemoveFlag returns a copy without the flag
func (v Validations) RemoveFlag(f Flag) Validations {
	return v &^ Validations(f)
}

// IsValidationsForValidDomain checks if a mask of validations really marks a domain as deliverable.
func (v Validations) IsValidationsForValidDomain() bool {
	return v.HasFlag(FDomainHasIP) && v.HasFlag(FMXLookup)
}
