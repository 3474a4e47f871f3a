package dealers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// Repository defines persistence operations for dealer accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error)
	FindBandAssignment(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (*models.DealerBandAssignment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dealers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error) {
	var account models.DealerAccount
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) FindBandAssignment(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (*models.DealerBandAssignment, error) {
	var assignment models.DealerBandAssignment
	err := r.db.WithContext(ctx).
		Where("dealer_account_id = ? AND part_type = ?", dealerAccountID, partType).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
