package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	"github.com/morganshaw/partslink-backend/pkg/pagination"
)

// Repository defines persistence operations for order headers and lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.OrderHeader) (*models.OrderHeader, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.OrderHeader, error)
	ListByDealer(ctx context.Context, dealerAccountID uuid.UUID, params pagination.Params) (*List, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.OrderHeader) (*models.OrderHeader, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderHeader{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderHeader, error) {
	var order models.OrderHeader
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_lines.created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByDealer(ctx context.Context, dealerAccountID uuid.UUID, params pagination.Params) (*List, error) {
	limit := pagination.ClampLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Preload("Lines").
		Where("dealer_account_id = ?", dealerAccountID).
		Order("created_at DESC, id DESC").
		Limit(pagination.FetchSize(params.Limit))

	key, err := pagination.DecodeKey(params.Cursor)
	if err != nil {
		return nil, err
	}
	if key != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			key.CreatedAt, key.CreatedAt, key.ID,
		)
	}

	var rows []models.OrderHeader
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &List{Orders: make([]Summary, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		list.Orders = append(list.Orders, summaryFromModel(row))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeKey(pagination.Key{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderHeader{}).
		Where("id = ?", id).
		Update("status", status).Error
}
