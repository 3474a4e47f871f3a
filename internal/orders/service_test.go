package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/pagination"
)

type stubOrdersRepo struct {
	orders   map[uuid.UUID]*models.OrderHeader
	statuses map[uuid.UUID]enums.OrderStatus
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{
		orders:   make(map[uuid.UUID]*models.OrderHeader),
		statuses: make(map[uuid.UUID]enums.OrderStatus),
	}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.OrderHeader) (*models.OrderHeader, error) {
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrdersRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, order := range s.orders {
		if !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderHeader, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	if status, ok := s.statuses[id]; ok {
		copied.Status = status
	}
	return &copied, nil
}

func (s *stubOrdersRepo) ListByDealer(ctx context.Context, dealerAccountID uuid.UUID, params pagination.Params) (*List, error) {
	list := &List{Orders: []Summary{}}
	for _, order := range s.orders {
		if order.DealerAccountID == dealerAccountID {
			list.Orders = append(list.Orders, summaryFromModel(*order))
		}
	}
	return list, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statuses[id] = status
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func seedOrder(repo *stubOrdersRepo, dealerID uuid.UUID, status enums.OrderStatus) *models.OrderHeader {
	order := &models.OrderHeader{
		ID:              uuid.New(),
		OrderNumber:     "ORD-20250812-0001",
		DealerAccountID: dealerID,
		DealerUserID:    uuid.New(),
		Status:          status,
		Subtotal:        decimal.NewFromInt(100),
		Total:           decimal.NewFromInt(100),
		Currency:        enums.CurrencyGBP,
		CreatedAt:       time.Now().UTC(),
	}
	repo.orders[order.ID] = order
	return order
}

func TestGetMapsForeignOrderToNotFound(t *testing.T) {
	repo := newStubOrdersRepo()
	owner := uuid.New()
	order := seedOrder(repo, owner, enums.OrderStatusProcessing)

	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, detail.OrderNumber)

	_, err = svc.Get(context.Background(), uuid.New(), order.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestGetUnknownOrderReturnsNotFound(t *testing.T) {
	svc, err := NewService(newStubOrdersRepo(), stubTxRunner{})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestCancelProcessingOrder(t *testing.T) {
	repo := newStubOrdersRepo()
	owner := uuid.New()
	order := seedOrder(repo, owner, enums.OrderStatusProcessing)

	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)

	detail, err := svc.Cancel(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, detail.Status)
	assert.Equal(t, enums.OrderStatusCancelled, repo.statuses[order.ID])
}

func TestCancelShippedOrderConflicts(t *testing.T) {
	repo := newStubOrdersRepo()
	owner := uuid.New()
	order := seedOrder(repo, owner, enums.OrderStatusShipped)

	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), owner, order.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestCancelCancelledOrderConflicts(t *testing.T) {
	repo := newStubOrdersRepo()
	owner := uuid.New()
	order := seedOrder(repo, owner, enums.OrderStatusCancelled)

	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), owner, order.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestCancelForeignOrderLooksMissing(t *testing.T) {
	repo := newStubOrdersRepo()
	order := seedOrder(repo, uuid.New(), enums.OrderStatusProcessing)

	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), uuid.New(), order.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.Empty(t, repo.statuses)
}
