package visibility

import (
	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
)

// CanView reports whether a dealer with the given entitlement may see the
// given part type. Unknown entitlements see nothing.
//
// AFTERMARKET_ONLY is broader than its name suggests: it grants everything
// except GENUINE, so BRANDED parts are included.
func CanView(entitlement enums.Entitlement, partType enums.PartType) bool {
	switch entitlement {
	case enums.EntitlementShowAll:
		return true
	case enums.EntitlementGenuineOnly:
		return partType == enums.PartTypeGenuine
	case enums.EntitlementAftermarketOnly:
		return partType != enums.PartTypeGenuine
	default:
		return false
	}
}

// VisiblePartTypes returns the part types the entitlement grants, in
// canonical order.
func VisiblePartTypes(entitlement enums.Entitlement) []enums.PartType {
	var visible []enums.PartType
	for _, partType := range enums.PartTypes() {
		if CanView(entitlement, partType) {
			visible = append(visible, partType)
		}
	}
	return visible
}

// EnsureProductVisible enforces the canonical gate order so hidden products
// never leak through dealer-facing queries.
func EnsureProductVisible(dealer *models.DealerAccount, product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeProductInactive, "product is inactive")
	}
	if dealer == nil {
		return pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")
	}
	if !CanView(dealer.Entitlement, product.PartType) {
		return pkgerrors.New(pkgerrors.CodeProductNotAvailable, "product not visible for dealer entitlement")
	}
	return nil
}
