package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withAssociations preloads everything the API exposes on a product: the
// images, the taxonomy records, and the color/size join rows with their
// vocabulary entries expanded.
func (r *GormProductRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images").
		Preload("Colors").
		Preload("Colors.Color").
		Preload("Sizes").
		Preload("Sizes.Size").
		Preload("Category").
		Preload("Subcategory").
		Preload("Subsub")
}

// FindByID finds a product with its full association set
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs. Unknown IDs are skipped,
// not reported; the caller decides whether a short result is an error.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForStore finds all products for a store with associations loaded
func (r *GormProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.withAssociations(r.db.WithContext(ctx)).
		Where("store_id = ?", storeID)
	query = applyOrdering(query, filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product with its associations
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update writes the scalar fields, clears every image and color/size join
// row, and recreates them from the entity. The clear and recreate phases
// run in one transaction so a failed recreate cannot leave the product
// stripped of its associations.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":           product.Name,
				"description":    product.Description,
				"info":           product.Info,
				"quantity":       product.Quantity,
				"price":          product.Price,
				"category_id":    product.CategoryID,
				"subcategory_id": product.SubcategoryID,
				"subsub_id":      product.SubsubID,
				"is_featured":    product.IsFeatured,
				"is_archived":    product.IsArchived,
				"is_offered":     product.IsOffered,
				"is_undercost":   product.IsUndercost,
				"updated_at":     product.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.ProductColor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.ProductSize{}).Error; err != nil {
			return err
		}

		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return err
			}
		}
		if len(product.Colors) > 0 {
			if err := tx.Create(&product.Colors).Error; err != nil {
				return err
			}
		}
		if len(product.Sizes) > 0 {
			if err := tx.Create(&product.Sizes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a product; images and join rows cascade
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&catalog.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&catalog.ProductColor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&catalog.ProductSize{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyOrdering applies the filter's ordering to the query
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy == "" {
		return query.Order("created_at DESC")
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(filter.OrderBy + " " + orderDir)
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
