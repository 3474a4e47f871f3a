package enums

import "fmt"

// PartType classifies every catalog product into one of the closed set of
// sourcing categories used for entitlement and band assignment.
type PartType string

const (
	PartTypeGenuine     PartType = "GENUINE"
	PartTypeAftermarket PartType = "AFTERMARKET"
	PartTypeBranded     PartType = "BRANDED"
)

var validPartTypes = []PartType{
	PartTypeGenuine,
	PartTypeAftermarket,
	PartTypeBranded,
}

// PartTypes returns every known part type in declaration order.
func PartTypes() []PartType {
	out := make([]PartType, len(validPartTypes))
	copy(out, validPartTypes)
	return out
}

// String implements fmt.Stringer.
func (p PartType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PartType.
func (p PartType) IsValid() bool {
	for _, candidate := range validPartTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePartType converts raw input into a PartType.
func ParsePartType(value string) (PartType, error) {
	for _, candidate := range validPartTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid part type %q", value)
}
