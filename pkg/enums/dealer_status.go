package enums

import "fmt"

// DealerStatus captures the lifecycle state of a dealer account. Only ACTIVE
// accounts may place orders.
type DealerStatus string

const (
	DealerStatusActive    DealerStatus = "ACTIVE"
	DealerStatusSuspended DealerStatus = "SUSPENDED"
	DealerStatusInactive  DealerStatus = "INACTIVE"
)

var validDealerStatuses = []DealerStatus{
	DealerStatusActive,
	DealerStatusSuspended,
	DealerStatusInactive,
}

// String implements fmt.Stringer.
func (s DealerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DealerStatus.
func (s DealerStatus) IsValid() bool {
	for _, candidate := range validDealerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDealerStatus converts raw input into a DealerStatus.
func ParseDealerStatus(value string) (DealerStatus, error) {
	for _, candidate := range validDealerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dealer status %q", value)
}
