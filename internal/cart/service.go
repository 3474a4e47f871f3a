package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/internal/pricing"
	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
)

type priceCalculator interface {
	CalculatePrice(ctx context.Context, req pricing.PriceRequest) (*pricing.PriceResult, error)
}

type productFinder interface {
	FindByCode(ctx context.Context, productCode string) (*models.Product, error)
}

// Identity scopes every cart operation to one dealer user.
type Identity struct {
	DealerAccountID uuid.UUID
	DealerUserID    uuid.UUID
}

// LineView is one enriched cart line. Lines the dealer can no longer buy
// (product removed, deactivated, or entitlement changed) stay in the cart
// but are flagged unavailable with zeroed prices.
type LineView struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	Description     string          `json:"description"`
	PartType        enums.PartType  `json:"part_type"`
	BandCode        string          `json:"band_code,omitempty"`
	Qty             int             `json:"qty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	MinPriceApplied bool            `json:"min_price_applied"`
	Available       bool            `json:"available"`
}

// View is the enriched cart returned to dealers. Subtotal covers available
// lines only.
type View struct {
	CartID   uuid.UUID       `json:"cart_id"`
	Lines    []LineView      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Currency enums.Currency  `json:"currency"`
}

// Totals is the strict quote used by checkout: every line must price
// successfully and the subtotal is the exact sum of line totals.
type Totals struct {
	CartID   uuid.UUID             `json:"cart_id"`
	Lines    []pricing.PriceResult `json:"lines"`
	Subtotal decimal.Decimal       `json:"subtotal"`
	Currency enums.Currency        `json:"currency"`
}

// Service exposes cart operations for one dealer user.
type Service interface {
	GetCart(ctx context.Context, identity Identity) (*View, error)
	AddItem(ctx context.Context, identity Identity, productCode string, qty int) (*View, error)
	UpdateItem(ctx context.Context, identity Identity, productID uuid.UUID, qty int) (*View, error)
	RemoveItem(ctx context.Context, identity Identity, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, identity Identity) (*View, error)
	CalculateTotals(ctx context.Context, identity Identity) (*Totals, error)
}

type service struct {
	repo     Repository
	products productFinder
	pricer   priceCalculator
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository, products productFinder, pricer priceCalculator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("price calculator required")
	}
	return &service{repo: repo, products: products, pricer: pricer}, nil
}

func validateIdentity(identity Identity) error {
	if identity.DealerAccountID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if identity.DealerUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dealer user id required")
	}
	return nil
}

func (s *service) GetCart(ctx context.Context, identity Identity) (*View, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}
	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.enrich(ctx, identity, cart)
}

func (s *service) AddItem(ctx context.Context, identity Identity, productCode string, qty int) (*View, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}

	product, err := s.products.FindByCode(ctx, productCode)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	existing, err := s.repo.FindItem(ctx, cart.ID, product.ID)
	switch {
	case err == nil:
		merged := existing.Qty + qty
		if merged > pricing.MaxLineQty {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("qty exceeds maximum of %d", pricing.MaxLineQty))
		}
		if err := s.repo.UpdateItemQty(ctx, existing.ID, merged); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge cart item")
		}
	case err == gorm.ErrRecordNotFound:
		if qty > pricing.MaxLineQty {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("qty exceeds maximum of %d", pricing.MaxLineQty))
		}
		item := &models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: product.ID,
			Qty:       qty,
		}
		if err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cart item")
	}

	return s.reload(ctx, identity, cart.ID)
}

func (s *service) UpdateItem(ctx context.Context, identity Identity, productID uuid.UUID, qty int) (*View, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if qty > pricing.MaxLineQty {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("qty exceeds maximum of %d", pricing.MaxLineQty))
	}

	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	item, err := s.repo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cart item")
	}

	if err := s.repo.UpdateItemQty(ctx, item.ID, qty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return s.reload(ctx, identity, cart.ID)
}

func (s *service) RemoveItem(ctx context.Context, identity Identity, productID uuid.UUID) (*View, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	item, err := s.repo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cart item")
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	return s.reload(ctx, identity, cart.ID)
}

func (s *service) Clear(ctx context.Context, identity Identity) (*View, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return s.reload(ctx, identity, cart.ID)
}

// CalculateTotals prices every line strictly: the first line that fails to
// price fails the whole call. Checkout depends on this all-or-nothing
// behavior.
func (s *service) CalculateTotals(ctx context.Context, identity Identity) (*Totals, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, identity.DealerAccountID, identity.DealerUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(cart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	totals := &Totals{
		CartID:   cart.ID,
		Lines:    make([]pricing.PriceResult, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
		Currency: enums.CurrencyGBP,
	}
	for _, item := range cart.Items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		result, err := s.pricer.CalculatePrice(ctx, pricing.PriceRequest{
			DealerAccountID: identity.DealerAccountID,
			ProductCode:     item.Product.ProductCode,
			Qty:             item.Qty,
		})
		if err != nil {
			return nil, err
		}
		totals.Lines = append(totals.Lines, *result)
		totals.Subtotal = totals.Subtotal.Add(result.LineTotal)
	}
	return totals, nil
}

func (s *service) reload(ctx context.Context, identity Identity, cartID uuid.UUID) (*View, error) {
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.enrich(ctx, identity, cart)
}

// enrich prices each line individually. Unlike CalculateTotals, pricing
// failures do not fail the view; the line is flagged unavailable so the
// dealer can see and remove it.
func (s *service) enrich(ctx context.Context, identity Identity, cart *models.Cart) (*View, error) {
	view := &View{
		CartID:   cart.ID,
		Lines:    make([]LineView, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
		Currency: enums.CurrencyGBP,
	}

	for _, item := range cart.Items {
		line := LineView{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if item.Product != nil {
			line.ProductCode = item.Product.ProductCode
			line.Description = item.Product.Description
			line.PartType = item.Product.PartType
		}

		if item.Product == nil {
			view.Lines = append(view.Lines, line)
			continue
		}

		result, err := s.pricer.CalculatePrice(ctx, pricing.PriceRequest{
			DealerAccountID: identity.DealerAccountID,
			ProductCode:     item.Product.ProductCode,
			Qty:             item.Qty,
		})
		if err != nil {
			if isLineLevelFailure(err) {
				view.Lines = append(view.Lines, line)
				continue
			}
			return nil, err
		}

		line.BandCode = result.BandCode
		line.UnitPrice = result.UnitPrice
		line.LineTotal = result.LineTotal
		line.MinPriceApplied = result.MinPriceApplied
		line.Available = true
		view.Lines = append(view.Lines, line)
		view.Subtotal = view.Subtotal.Add(result.LineTotal)
	}
	return view, nil
}

func isLineLevelFailure(err error) bool {
	for _, code := range []pkgerrors.Code{
		pkgerrors.CodeProductNotFound,
		pkgerrors.CodeProductInactive,
		pkgerrors.CodeProductNotAvailable,
		pkgerrors.CodeBandNotAssigned,
		pkgerrors.CodeBandPriceMissing,
	} {
		if pkgerrors.HasCode(err, code) {
			return true
		}
	}
	return false
}
