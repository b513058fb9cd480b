package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAllForStore loads orders with items and their products
func (r *GormOrderRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("store_id = ?", storeID)
	query = applyOrdering(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts an order with its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// Save updates an order's own fields. Items are written once at creation
// and never modified afterwards.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
