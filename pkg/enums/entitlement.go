package enums

import "fmt"

// Entitlement is the dealer-level policy restricting which part types the
// account may see and price.
type Entitlement string

const (
	EntitlementGenuineOnly     Entitlement = "GENUINE_ONLY"
	EntitlementAftermarketOnly Entitlement = "AFTERMARKET_ONLY"
	EntitlementShowAll         Entitlement = "SHOW_ALL"
)

var validEntitlements = []Entitlement{
	EntitlementGenuineOnly,
	EntitlementAftermarketOnly,
	EntitlementShowAll,
}

// String implements fmt.Stringer.
func (e Entitlement) String() string {
	return string(e)
}

// IsValid reports whether the value is a known Entitlement.
func (e Entitlement) IsValid() bool {
	for _, candidate := range validEntitlements {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntitlement converts raw input into an Entitlement.
func ParseEntitlement(value string) (Entitlement, error) {
	for _, candidate := range validEntitlements {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entitlement %q", value)
}
