package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
)

type stubCatalogRepo struct {
	listFn func(ctx context.Context, filters ListFilters) ([]models.Product, error)
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	return s.listFn(ctx, filters)
}

type stubDealerFinder struct {
	account *models.DealerAccount
	err     error
}

func (s *stubDealerFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

type stubViewChecker struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubViewChecker) CanDealerViewProduct(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.allowed, nil
}

func TestSearchFiltersByEntitlement(t *testing.T) {
	dealer := &models.DealerAccount{
		ID:          uuid.New(),
		Entitlement: enums.EntitlementAftermarketOnly,
		Status:      enums.DealerStatusActive,
	}

	var captured ListFilters
	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			captured = filters
			return []models.Product{
				{ID: uuid.New(), ProductCode: "FL-2002", Description: "oil filter", PartType: enums.PartTypeAftermarket},
			}, nil
		},
	}

	svc, err := NewService(repo, &stubDealerFinder{account: dealer}, &stubViewChecker{allowed: true})
	require.NoError(t, err)

	got, err := svc.Search(context.Background(), SearchInput{DealerAccountID: dealer.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FL-2002", got[0].ProductCode)

	assert.True(t, captured.ActiveOnly)
	assert.Equal(t, []enums.PartType{enums.PartTypeAftermarket, enums.PartTypeBranded}, captured.PartTypes)
}

func TestSearchPartTypeFilterOutsideEntitlementReturnsEmpty(t *testing.T) {
	dealer := &models.DealerAccount{
		ID:          uuid.New(),
		Entitlement: enums.EntitlementGenuineOnly,
		Status:      enums.DealerStatusActive,
	}

	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			t.Fatal("repo should not be queried when the filter is outside the entitlement")
			return nil, nil
		},
	}

	views := &stubViewChecker{allowed: false}
	svc, err := NewService(repo, &stubDealerFinder{account: dealer}, views)
	require.NoError(t, err)

	partType := enums.PartTypeBranded
	got, err := svc.Search(context.Background(), SearchInput{
		DealerAccountID: dealer.ID,
		PartType:        &partType,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, views.calls, "the filter path must consult the visibility query")
}

func TestSearchPartTypeFilterNarrowsToOneType(t *testing.T) {
	dealer := &models.DealerAccount{
		ID:          uuid.New(),
		Entitlement: enums.EntitlementShowAll,
		Status:      enums.DealerStatusActive,
	}

	var captured ListFilters
	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			captured = filters
			return nil, nil
		},
	}

	views := &stubViewChecker{allowed: true}
	svc, err := NewService(repo, &stubDealerFinder{account: dealer}, views)
	require.NoError(t, err)

	partType := enums.PartTypeGenuine
	_, err = svc.Search(context.Background(), SearchInput{
		DealerAccountID: dealer.ID,
		PartType:        &partType,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, views.calls)
	assert.Equal(t, []enums.PartType{enums.PartTypeGenuine}, captured.PartTypes)
}

func TestSearchPartTypeFilterUnknownDealer(t *testing.T) {
	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			return nil, nil
		},
	}
	views := &stubViewChecker{err: pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")}
	svc, err := NewService(repo, &stubDealerFinder{err: gorm.ErrRecordNotFound}, views)
	require.NoError(t, err)

	partType := enums.PartTypeGenuine
	_, err = svc.Search(context.Background(), SearchInput{
		DealerAccountID: uuid.New(),
		PartType:        &partType,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDealerNotFound))
}

func TestSearchUnknownDealerMapsToDealerNotFound(t *testing.T) {
	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			return nil, nil
		},
	}
	svc, err := NewService(repo, &stubDealerFinder{err: gorm.ErrRecordNotFound}, &stubViewChecker{allowed: true})
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), SearchInput{DealerAccountID: uuid.New()})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDealerNotFound))
}

func TestSearchUnknownEntitlementSeesNothing(t *testing.T) {
	dealer := &models.DealerAccount{
		ID:          uuid.New(),
		Entitlement: enums.Entitlement("LEGACY_TIER"),
		Status:      enums.DealerStatusActive,
	}
	repo := &stubCatalogRepo{
		listFn: func(ctx context.Context, filters ListFilters) ([]models.Product, error) {
			t.Fatal("repo should not be queried for unknown entitlements")
			return nil, nil
		},
	}
	svc, err := NewService(repo, &stubDealerFinder{account: dealer}, &stubViewChecker{allowed: true})
	require.NoError(t, err)

	got, err := svc.Search(context.Background(), SearchInput{DealerAccountID: dealer.ID})
	require.NoError(t, err)
	assert.Empty(t, got)
}
