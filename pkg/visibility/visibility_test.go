package visibility

import (
	"testing"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	"github.com/morganshaw/partslink-backend/pkg/errors"
)

func TestCanViewMatrix(t *testing.T) {
	tests := []struct {
		entitlement enums.Entitlement
		partType    enums.PartType
		want        bool
	}{
		{enums.EntitlementGenuineOnly, enums.PartTypeGenuine, true},
		{enums.EntitlementGenuineOnly, enums.PartTypeAftermarket, false},
		{enums.EntitlementGenuineOnly, enums.PartTypeBranded, false},
		{enums.EntitlementAftermarketOnly, enums.PartTypeGenuine, false},
		{enums.EntitlementAftermarketOnly, enums.PartTypeAftermarket, true},
		{enums.EntitlementAftermarketOnly, enums.PartTypeBranded, true},
		{enums.EntitlementShowAll, enums.PartTypeGenuine, true},
		{enums.EntitlementShowAll, enums.PartTypeAftermarket, true},
		{enums.EntitlementShowAll, enums.PartTypeBranded, true},
	}

	for _, tt := range tests {
		if got := CanView(tt.entitlement, tt.partType); got != tt.want {
			t.Errorf("CanView(%s, %s) = %v, want %v", tt.entitlement, tt.partType, got, tt.want)
		}
	}
}

func TestCanViewUnknownEntitlementDeniesEverything(t *testing.T) {
	for _, partType := range enums.PartTypes() {
		if CanView(enums.Entitlement("LEGACY_TIER"), partType) {
			t.Errorf("unknown entitlement must not see %s", partType)
		}
	}
}

func TestVisiblePartTypes(t *testing.T) {
	got := VisiblePartTypes(enums.EntitlementAftermarketOnly)
	if len(got) != 2 {
		t.Fatalf("expected 2 part types, got %v", got)
	}
	if got[0] != enums.PartTypeAftermarket || got[1] != enums.PartTypeBranded {
		t.Fatalf("unexpected visible set %v", got)
	}

	if got := VisiblePartTypes(enums.EntitlementShowAll); len(got) != 3 {
		t.Fatalf("SHOW_ALL should see every part type, got %v", got)
	}
	if got := VisiblePartTypes(enums.Entitlement("")); got != nil {
		t.Fatalf("blank entitlement should see nothing, got %v", got)
	}
}

func baseProduct() *models.Product {
	return &models.Product{
		ProductCode: "BP-1001",
		Description: "Front brake pad set",
		PartType:    enums.PartTypeGenuine,
		IsActive:    true,
	}
}

func baseDealer() *models.DealerAccount {
	return &models.DealerAccount{
		AccountNumber: "D-20001",
		Name:          "Shaw Motors",
		Entitlement:   enums.EntitlementShowAll,
		Status:        enums.DealerStatusActive,
	}
}

func TestEnsureProductVisible(t *testing.T) {
	t.Run("product missing", func(t *testing.T) {
		err := EnsureProductVisible(baseDealer(), nil)
		if err == nil || errors.As(err).Code() != errors.CodeProductNotFound {
			t.Fatalf("expected product not found, got %v", err)
		}
	})
	t.Run("inactive product", func(t *testing.T) {
		product := baseProduct()
		product.IsActive = false
		err := EnsureProductVisible(baseDealer(), product)
		if err == nil || errors.As(err).Code() != errors.CodeProductInactive {
			t.Fatalf("expected inactive code, got %v", err)
		}
	})
	t.Run("inactive beats entitlement", func(t *testing.T) {
		product := baseProduct()
		product.IsActive = false
		dealer := baseDealer()
		dealer.Entitlement = enums.EntitlementAftermarketOnly
		err := EnsureProductVisible(dealer, product)
		if err == nil || errors.As(err).Code() != errors.CodeProductInactive {
			t.Fatalf("inactive must be reported before entitlement, got %v", err)
		}
	})
	t.Run("not entitled", func(t *testing.T) {
		dealer := baseDealer()
		dealer.Entitlement = enums.EntitlementAftermarketOnly
		err := EnsureProductVisible(dealer, baseProduct())
		if err == nil || errors.As(err).Code() != errors.CodeProductNotAvailable {
			t.Fatalf("expected not available code, got %v", err)
		}
	})
	t.Run("visible", func(t *testing.T) {
		if err := EnsureProductVisible(baseDealer(), baseProduct()); err != nil {
			t.Fatalf("expected visible, got %v", err)
		}
	})
}
