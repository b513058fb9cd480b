package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/catalog"
)

// GormAttributeRepository implements catalog.AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// Colors returns all colors for a store
func (r *GormAttributeRepository) Colors(ctx context.Context, storeID uuid.UUID) ([]catalog.Color, error) {
	var colors []catalog.Color
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// Sizes returns all sizes for a store
func (r *GormAttributeRepository) Sizes(ctx context.Context, storeID uuid.UUID) ([]catalog.Size, error) {
	var sizes []catalog.Size
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// SaveColor creates or updates a color
func (r *GormAttributeRepository) SaveColor(ctx context.Context, color *catalog.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// SaveSize creates or updates a size
func (r *GormAttributeRepository) SaveSize(ctx context.Context, size *catalog.Size) error {
	return r.db.WithContext(ctx).Save(size).Error
}

// Ensure GormAttributeRepository implements AttributeRepository
var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
