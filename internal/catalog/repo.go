package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
)

// ListFilters narrows catalogue listings.
type ListFilters struct {
	PartTypes  []enums.PartType
	Search     string
	ActiveOnly bool
}

// Repository defines persistence operations for the parts catalogue.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByCode(ctx context.Context, productCode string) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalogue repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("ReferencePrice").
		Preload("BandPrices").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByCode(ctx context.Context, productCode string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("ReferencePrice").
		Preload("BandPrices").
		Where("product_code = ?", productCode).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if len(filters.PartTypes) > 0 {
		query = query.Where("part_type IN ?", filters.PartTypes)
	}
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if term := strings.TrimSpace(filters.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(product_code) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var products []models.Product
	if err := query.Order("product_code ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
