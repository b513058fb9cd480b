package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// GormTaxonomyRepository implements catalog.TaxonomyRepository using GORM
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewGormTaxonomyRepository creates a new GormTaxonomyRepository
func NewGormTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// Categories returns all categories for a store
func (r *GormTaxonomyRepository) Categories(ctx context.Context, storeID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Subcategories returns all subcategories for a store
func (r *GormTaxonomyRepository) Subcategories(ctx context.Context, storeID uuid.UUID) ([]catalog.Subcategory, error) {
	var subcategories []catalog.Subcategory
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// Subsubs returns all subsubs for a store
func (r *GormTaxonomyRepository) Subsubs(ctx context.Context, storeID uuid.UUID) ([]catalog.Subsub, error) {
	var subsubs []catalog.Subsub
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&subsubs).Error; err != nil {
		return nil, err
	}
	return subsubs, nil
}

// ValidateChain checks the referenced taxonomy records exist in the store
// and form a parent chain.
func (r *GormTaxonomyRepository) ValidateChain(ctx context.Context, storeID, categoryID, subcategoryID, subsubID uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Subsub{}).
		Joins("JOIN subcategories ON subcategories.id = subsubs.subcategory_id").
		Joins("JOIN categories ON categories.id = subcategories.category_id").
		Where("subsubs.id = ? AND subsubs.store_id = ?", subsubID, storeID).
		Where("subcategories.id = ? AND subcategories.category_id = ?", subcategoryID, categoryID).
		Where("categories.id = ? AND categories.store_id = ?", categoryID, storeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrInvalidInput
	}
	return nil
}

// SaveCategory creates or updates a category
func (r *GormTaxonomyRepository) SaveCategory(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SaveSubcategory creates or updates a subcategory
func (r *GormTaxonomyRepository) SaveSubcategory(ctx context.Context, subcategory *catalog.Subcategory) error {
	return r.db.WithContext(ctx).Save(subcategory).Error
}

// SaveSubsub creates or updates a subsub
func (r *GormTaxonomyRepository) SaveSubsub(ctx context.Context, subsub *catalog.Subsub) error {
	return r.db.WithContext(ctx).Save(subsub).Error
}

// Ensure GormTaxonomyRepository implements TaxonomyRepository
var _ catalog.TaxonomyRepository = (*GormTaxonomyRepository)(nil)
