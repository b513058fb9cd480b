package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/storeadmin/backend/internal/domain/shared"
)

// Category is the top level of the three-level product taxonomy.
type Category struct {
	shared.StoreEntity
	Name string `gorm:"type:varchar(200);not null" json:"name"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// Subcategory is the middle taxonomy level, always under one category.
type Subcategory struct {
	shared.StoreEntity
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Name       string    `gorm:"type:varchar(200);not null" json:"name"`
}

// TableName returns the table name for GORM
func (Subcategory) TableName() string {
	return "subcategories"
}

// Subsub is the leaf taxonomy level, always under one subcategory.
type Subsub struct {
	shared.StoreEntity
	SubcategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"subcategoryId"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
}

// TableName returns the table name for GORM
func (Subsub) TableName() string {
	return "subsubs"
}

// NewCategory creates a store-scoped category
func NewCategory(storeID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	return &Category{
		StoreEntity: shared.NewStoreEntity(storeID),
		Name:        name,
	}, nil
}

// TaxonomyRepository reads and persists the three taxonomy levels together.
// They are small per-store vocabularies and are always consumed as a set by
// the product form, so splitting them into three repositories buys nothing.
type TaxonomyRepository interface {
	Categories(ctx context.Context, storeID uuid.UUID) ([]Category, error)
	Subcategories(ctx context.Context, storeID uuid.UUID) ([]Subcategory, error)
	Subsubs(ctx context.Context, storeID uuid.UUID) ([]Subsub, error)
	// ValidateChain checks that the three referenced levels exist, belong to
	// the store, and form a parent chain. Returns shared.ErrInvalidInput
	// when they do not.
	ValidateChain(ctx context.Context, storeID, categoryID, subcategoryID, subsubID uuid.UUID) error
	SaveCategory(ctx context.Context, category *Category) error
	SaveSubcategory(ctx context.Context, subcategory *Subcategory) error
	SaveSubsub(ctx context.Context, subsub *Subsub) error
}
