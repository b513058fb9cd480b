package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// ProductService handles product resource operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	storeRepo    catalog.StoreRepository
	taxonomyRepo catalog.TaxonomyRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	storeRepo catalog.StoreRepository,
	taxonomyRepo catalog.TaxonomyRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// Get loads a product with its full association set. A missing product is
// not an error; the API answers it with a null body.
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

// Create validates the submission, checks store ownership, and creates the
// product. Field validation runs before the ownership check so a broken
// form is reported to the submitting merchant even on a foreign store.
func (s *ProductService) Create(ctx context.Context, storeID uuid.UUID, userID string, req ProductRequest) (*catalog.Product, error) {
	details := req.ToDetails()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	if err := s.taxonomyRepo.ValidateChain(ctx, storeID, details.CategoryID, details.SubcategoryID, details.SubsubID); err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			return nil, shared.NewValidationError("Category chain is invalid")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(storeID, details)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, product.ID)
}

// Update validates the submission, checks store ownership, and replaces the
// product's fields and associations wholesale.
func (s *ProductService) Update(ctx context.Context, storeID, productID uuid.UUID, userID string, req ProductRequest) (*catalog.Product, error) {
	details := req.ToDetails()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	if err := s.taxonomyRepo.ValidateChain(ctx, storeID, details.CategoryID, details.SubcategoryID, details.SubsubID); err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			return nil, shared.NewValidationError("Category chain is invalid")
		}
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(details); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, productID)
}

// Delete checks store ownership, removes the product, and returns the
// deleted record.
func (s *ProductService) Delete(ctx context.Context, storeID, productID uuid.UUID, userID string) (*catalog.Product, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return nil, err
	}
	return product, nil
}

// requireOwnership resolves the store for the acting user; a store that
// exists but belongs to someone else reads the same as one that does not
// exist.
func (s *ProductService) requireOwnership(ctx context.Context, storeID uuid.UUID, userID string) error {
	_, err := s.storeRepo.FindByIDAndUser(ctx, storeID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotStoreOwner
		}
		return err
	}
	return nil
}
