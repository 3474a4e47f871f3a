package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/metrics"
	"github.com/morganshaw/partslink-backend/pkg/visibility"
)

// MaxLineQty caps the quantity accepted for a single priced line.
const MaxLineQty = 9999

type productFinder interface {
	FindByCode(ctx context.Context, productCode string) (*models.Product, error)
}

type dealerStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error)
	FindBandAssignment(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (*models.DealerBandAssignment, error)
}

// PriceRequest identifies one dealer/product/qty combination to price.
type PriceRequest struct {
	DealerAccountID uuid.UUID
	ProductCode     string
	Qty             int
}

// PriceResult is the fully resolved price for one line. UnitPrice already
// reflects the minimum price floor when MinPriceApplied is true. Available is
// always true on a successful result; failed lookups return a typed error
// instead.
type PriceResult struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	Description     string          `json:"description"`
	PartType        enums.PartType  `json:"part_type"`
	BandCode        string          `json:"band_code"`
	Qty             int             `json:"qty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Currency        enums.Currency  `json:"currency"`
	MinPriceApplied bool            `json:"min_price_applied"`
	Available       bool            `json:"available"`
}

// Service resolves dealer-specific prices and visibility.
type Service interface {
	CalculatePrice(ctx context.Context, req PriceRequest) (*PriceResult, error)
	CanDealerViewProduct(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (bool, error)
}

type service struct {
	products productFinder
	dealers  dealerStore
	metrics  *metrics.PricingMetrics
}

// NewService builds a pricing service with the required dependencies.
// Metrics may be nil; recording becomes a no-op.
func NewService(products productFinder, dealers dealerStore, pricingMetrics *metrics.PricingMetrics) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if dealers == nil {
		return nil, fmt.Errorf("dealer store required")
	}
	return &service{
		products: products,
		dealers:  dealers,
		metrics:  pricingMetrics,
	}, nil
}

// CalculatePrice walks the resolution pipeline in a fixed order and stops at
// the first gate that fails: product existence, active flag, entitlement,
// band assignment, band price, then the minimum price floor.
func (s *service) CalculatePrice(ctx context.Context, req PriceRequest) (*PriceResult, error) {
	started := time.Now()
	result, err := s.calculate(ctx, req)
	outcome := outcomeForError(err)
	s.metrics.IncRequest(outcome)
	s.metrics.ObserveDuration(outcome, time.Since(started))
	if err == nil && result.MinPriceApplied {
		s.metrics.IncFloorApplied(result.PartType.String())
	}
	return result, err
}

func (s *service) calculate(ctx context.Context, req PriceRequest) (*PriceResult, error) {
	if req.DealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if strings.TrimSpace(req.ProductCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product code required")
	}
	if req.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if req.Qty > MaxLineQty {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("qty exceeds maximum of %d", MaxLineQty))
	}

	dealer, err := s.dealers.FindByID(ctx, req.DealerAccountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dealer account")
	}

	product, err := s.products.FindByCode(ctx, req.ProductCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := visibility.EnsureProductVisible(dealer, product); err != nil {
		return nil, err
	}

	assignment, err := s.dealers.FindBandAssignment(ctx, dealer.ID, product.PartType)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeBandNotAssigned,
				fmt.Sprintf("no band assignment for part type %s", product.PartType))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load band assignment")
	}

	bandPrice, ok := findBandPrice(product.BandPrices, assignment.BandCode)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeBandPriceMissing,
			fmt.Sprintf("no price for band %s on product %s", assignment.BandCode, product.ProductCode))
	}

	unitPrice := bandPrice
	minApplied := false
	if product.ReferencePrice != nil && product.ReferencePrice.MinimumPrice != nil {
		if unitPrice.LessThan(*product.ReferencePrice.MinimumPrice) {
			unitPrice = *product.ReferencePrice.MinimumPrice
			minApplied = true
		}
	}

	return &PriceResult{
		ProductID:       product.ID,
		ProductCode:     product.ProductCode,
		Description:     product.Description,
		PartType:        product.PartType,
		BandCode:        assignment.BandCode,
		Qty:             req.Qty,
		UnitPrice:       unitPrice,
		LineTotal:       unitPrice.Mul(decimal.NewFromInt(int64(req.Qty))),
		Currency:        enums.CurrencyGBP,
		MinPriceApplied: minApplied,
		Available:       true,
	}, nil
}

// CanDealerViewProduct resolves the dealer account and answers the
// entitlement matrix for one part type. Unknown accounts are an error, not a
// hidden product.
func (s *service) CanDealerViewProduct(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (bool, error) {
	if dealerAccountID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if !partType.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "invalid part type")
	}

	dealer, err := s.dealers.FindByID(ctx, dealerAccountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dealer account")
	}
	return visibility.CanView(dealer.Entitlement, partType), nil
}

func findBandPrice(bandPrices []models.BandPrice, bandCode string) (decimal.Decimal, bool) {
	for _, bp := range bandPrices {
		if bp.BandCode == bandCode {
			return bp.Price, true
		}
	}
	return decimal.Decimal{}, false
}

func outcomeForError(err error) string {
	if err == nil {
		return "priced"
	}
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeProductNotFound):
		return "product_not_found"
	case pkgerrors.HasCode(err, pkgerrors.CodeProductInactive):
		return "product_inactive"
	case pkgerrors.HasCode(err, pkgerrors.CodeProductNotAvailable):
		return "not_entitled"
	case pkgerrors.HasCode(err, pkgerrors.CodeBandNotAssigned):
		return "band_not_assigned"
	case pkgerrors.HasCode(err, pkgerrors.CodeBandPriceMissing):
		return "band_price_missing"
	case pkgerrors.HasCode(err, pkgerrors.CodeDealerNotFound):
		return "dealer_not_found"
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return "invalid_request"
	default:
		return "error"
	}
}
