package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/internal/cart"
	"github.com/morganshaw/partslink-backend/internal/orders"
	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
)

type dealerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error)
}

type cartQuoter interface {
	CalculateTotals(ctx context.Context, identity cart.Identity) (*cart.Totals, error)
}

type cartStore interface {
	WithTx(tx *gorm.DB) cart.Repository
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PlaceOrderInput carries the optional dealer-supplied order annotations.
type PlaceOrderInput struct {
	PORef string
	Notes string
}

// Service places orders from the dealer user's cart.
type Service interface {
	PlaceOrder(ctx context.Context, identity cart.Identity, input PlaceOrderInput) (*orders.Detail, error)
}

type service struct {
	dealers dealerFinder
	carts   cartQuoter
	items   cartStore
	orders  orders.Repository
	tx      txRunner
	now     func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(dealers dealerFinder, carts cartQuoter, items cartStore, ordersRepo orders.Repository, tx txRunner) (Service, error) {
	if dealers == nil {
		return nil, fmt.Errorf("dealer finder required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart quoter required")
	}
	if items == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		dealers: dealers,
		carts:   carts,
		items:   items,
		orders:  ordersRepo,
		tx:      tx,
		now:     time.Now,
	}, nil
}

// BuildSnapshot turns a strict cart quote into a persistable order. The
// resulting header and lines copy every price component so later catalogue
// or band edits never change what the dealer agreed to pay.
func BuildSnapshot(identity cart.Identity, orderNumber string, input PlaceOrderInput, totals *cart.Totals) *models.OrderHeader {
	header := &models.OrderHeader{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		DealerAccountID: identity.DealerAccountID,
		DealerUserID:    identity.DealerUserID,
		Status:          enums.OrderStatusProcessing,
		PORef:           input.PORef,
		Notes:           input.Notes,
		Subtotal:        totals.Subtotal,
		Total:           totals.Subtotal,
		Currency:        totals.Currency,
		Lines:           make([]models.OrderLine, 0, len(totals.Lines)),
	}
	for _, line := range totals.Lines {
		header.Lines = append(header.Lines, models.OrderLine{
			ID:              uuid.New(),
			OrderID:         header.ID,
			ProductID:       line.ProductID,
			ProductCode:     line.ProductCode,
			Description:     line.Description,
			PartType:        line.PartType,
			BandCode:        line.BandCode,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.LineTotal,
			MinPriceApplied: line.MinPriceApplied,
		})
	}
	return header
}

// PlaceOrder quotes the cart strictly, snapshots it into an order, and
// clears the cart. Numbering, persistence, and the clear run in a single
// transaction; any pricing failure rejects the whole checkout.
func (s *service) PlaceOrder(ctx context.Context, identity cart.Identity, input PlaceOrderInput) (*orders.Detail, error) {
	if identity.DealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if identity.DealerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer user id required")
	}

	dealer, err := s.dealers.FindByID(ctx, identity.DealerAccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dealer account")
	}
	if dealer.Status != enums.DealerStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeDealerNotActive, "dealer account is not active")
	}

	totals, err := s.carts.CalculateTotals(ctx, identity)
	if err != nil {
		return nil, err
	}

	var created *models.OrderHeader
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.orders.WithTx(tx)

		number, err := orders.NextOrderNumber(ctx, ordersRepo, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "derive order number")
		}

		created, err = ordersRepo.Create(ctx, BuildSnapshot(identity, number, input, totals))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}

		if err := s.items.WithTx(tx).ClearItems(ctx, totals.CartID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := orders.DetailFromModel(*created)
	return &detail, nil
}
