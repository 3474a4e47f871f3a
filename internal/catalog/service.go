package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morganshaw/partslink-backend/pkg/db/models"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/visibility"
)

type dealerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DealerAccount, error)
}

type viewChecker interface {
	CanDealerViewProduct(ctx context.Context, dealerAccountID uuid.UUID, partType enums.PartType) (bool, error)
}

// SearchInput captures a dealer-scoped catalogue query.
type SearchInput struct {
	DealerAccountID uuid.UUID
	PartType        *enums.PartType
	Search          string
}

// ProductSummary is the dealer-facing listing row. Prices are not included;
// the pricing endpoint owns those.
type ProductSummary struct {
	ID          uuid.UUID      `json:"id"`
	ProductCode string         `json:"product_code"`
	Description string         `json:"description"`
	PartType    enums.PartType `json:"part_type"`
}

// Service exposes dealer-facing catalogue reads.
type Service interface {
	Search(ctx context.Context, input SearchInput) ([]ProductSummary, error)
}

type service struct {
	repo    Repository
	dealers dealerFinder
	views   viewChecker
}

// NewService builds a catalogue service with the required dependencies.
func NewService(repo Repository, dealers dealerFinder, views viewChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dealers == nil {
		return nil, fmt.Errorf("dealer finder required")
	}
	if views == nil {
		return nil, fmt.Errorf("view checker required")
	}
	return &service{repo: repo, dealers: dealers, views: views}, nil
}

// Search lists active products the dealer's entitlement allows. The
// entitlement filter is applied in the query itself so hidden part types
// never reach the response builder.
func (s *service) Search(ctx context.Context, input SearchInput) ([]ProductSummary, error) {
	if input.DealerAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer account id required")
	}

	var visible []enums.PartType
	if input.PartType != nil {
		if !input.PartType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid part type filter")
		}
		allowed, err := s.views.CanDealerViewProduct(ctx, input.DealerAccountID, *input.PartType)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return []ProductSummary{}, nil
		}
		visible = []enums.PartType{*input.PartType}
	} else {
		dealer, err := s.dealers.FindByID(ctx, input.DealerAccountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeDealerNotFound, "dealer account not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dealer account")
		}
		visible = visibility.VisiblePartTypes(dealer.Entitlement)
		if len(visible) == 0 {
			return []ProductSummary{}, nil
		}
	}

	products, err := s.repo.List(ctx, ListFilters{
		PartTypes:  visible,
		Search:     input.Search,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, ProductSummary{
			ID:          product.ID,
			ProductCode: product.ProductCode,
			Description: product.Description,
			PartType:    product.PartType,
		})
	}
	return summaries, nil
}
