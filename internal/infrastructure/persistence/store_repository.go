package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// GormStoreRepository implements catalog.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	var store catalog.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindByIDAndUser finds a store only when the given external user owns it
func (r *GormStoreRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*catalog.Store, error) {
	var store catalog.Store
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *catalog.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Ensure GormStoreRepository implements StoreRepository
var _ catalog.StoreRepository = (*GormStoreRepository)(nil)
