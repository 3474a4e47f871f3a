package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes dealer-facing order history operations.
type Service interface {
	List(ctx context.Context, dealerAccountID uuid.UUID, params pagination.Params) (*List, error)
	Get(ctx context.Context, dealerAccountID, orderID uuid.UUID) (*Detail, error)
	Cancel(ctx context.Context, dealerAccountID, orderID uuid.UUID) (*Detail, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, dealerAccountID uuid.UUID, params pagination.Params) (*List, error) {
	if dealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	list, err := s.repo.ListByDealer(ctx, dealerAccountID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, dealerAccountID, orderID uuid.UUID) (*Detail, error) {
	if dealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	// Another dealer's order looks identical to a missing one.
	if order.DealerAccountID != dealerAccountID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	detail := DetailFromModel(*order)
	return &detail, nil
}

// Cancel moves an order to CANCELLED when its current status allows it.
// Shipped and already-cancelled orders are immutable.
func (s *service) Cancel(ctx context.Context, dealerAccountID, orderID uuid.UUID) (*Detail, error) {
	if dealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var detail Detail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.DealerAccountID != dealerAccountID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("order in status %s cannot be cancelled", order.Status))
		}

		if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		order.Status = enums.OrderStatusCancelled
		detail = DetailFromModel(*order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
