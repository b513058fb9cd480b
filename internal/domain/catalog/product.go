package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeadmin/backend/internal/domain/shared"
)

// Product is the aggregate root of the catalog. Images and the color/size
// join rows live and die with the product; updates replace them wholesale
// rather than diffing, matching the admin form which always submits the
// complete set.
type Product struct {
	shared.StoreEntity
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	SubcategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"subcategoryId"`
	SubsubID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"subsubId"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Info          string          `gorm:"type:text;not null" json:"info"`
	Quantity      int             `gorm:"not null;default:0" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	IsFeatured    bool            `gorm:"not null;default:false" json:"isFeatured"`
	IsArchived    bool            `gorm:"not null;default:false" json:"isArchived"`
	IsOffered     bool            `gorm:"not null;default:false" json:"isOffered"`
	IsUndercost   bool            `gorm:"not null;default:false" json:"isUndercost"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Colors []ProductColor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`
	Sizes  []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`

	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Subsub      *Subsub      `gorm:"foreignKey:SubsubID" json:"subsub,omitempty"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductImage is one image attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductColor links a product to one color from the store vocabulary
type ProductColor struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	ColorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"colorId"`
	Color     *Color    `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

// TableName returns the table name for GORM
func (ProductColor) TableName() string {
	return "product_colors"
}

// ProductSize links a product to one size from the store vocabulary
type ProductSize struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	SizeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sizeId"`
	Size      *Size     `gorm:"foreignKey:SizeID" json:"size,omitempty"`
}

// TableName returns the table name for GORM
func (ProductSize) TableName() string {
	return "product_sizes"
}

// ProductDetails carries the complete admin-form submission for a product.
// Validate reports the first missing field with the exact message the API
// contract promises, in the contract's order.
type ProductDetails struct {
	Name          string
	Description   string
	Info          string
	ImageURLs     []string
	Quantity      int
	Price         decimal.Decimal
	CategoryID    uuid.UUID
	SubcategoryID uuid.UUID
	SubsubID      uuid.UUID
	ColorIDs      []uuid.UUID
	SizeIDs       []uuid.UUID
	IsFeatured    bool
	IsArchived    bool
	IsOffered     bool
	IsUndercost   bool
}

// Validate checks required fields in the order the form presents them
func (d ProductDetails) Validate() error {
	switch {
	case d.Name == "":
		return shared.NewValidationError("Name is required")
	case d.Description == "":
		return shared.NewValidationError("Description is required")
	case d.Info == "":
		return shared.NewValidationError("Info is required")
	case len(d.ImageURLs) == 0:
		return shared.NewValidationError("Images are required")
	case d.Quantity == 0:
		return shared.NewValidationError("Quantity is required")
	case d.Price.IsZero():
		return shared.NewValidationError("Price is required")
	case d.CategoryID == uuid.Nil:
		return shared.NewValidationError("Category id is required")
	case d.SubcategoryID == uuid.Nil:
		return shared.NewValidationError("Subcategory id is required")
	case d.SubsubID == uuid.Nil:
		return shared.NewValidationError("Subsub id is required")
	case len(d.ColorIDs) == 0:
		return shared.NewValidationError("Color id is required")
	case len(d.SizeIDs) == 0:
		return shared.NewValidationError("Size id is required")
	}
	return nil
}

// NewProduct creates a product with its full association set
func NewProduct(storeID uuid.UUID, details ProductDetails) (*Product, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	p := &Product{
		StoreEntity: shared.NewStoreEntity(storeID),
	}
	p.apply(details)
	return p, nil
}

// Update replaces the product's scalar fields and association set
func (p *Product) Update(details ProductDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.apply(details)
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Product) apply(details ProductDetails) {
	p.Name = details.Name
	p.Description = details.Description
	p.Info = details.Info
	p.Quantity = details.Quantity
	p.Price = details.Price
	p.CategoryID = details.CategoryID
	p.SubcategoryID = details.SubcategoryID
	p.SubsubID = details.SubsubID
	p.IsFeatured = details.IsFeatured
	p.IsArchived = details.IsArchived
	p.IsOffered = details.IsOffered
	p.IsUndercost = details.IsUndercost

	p.Images = make([]ProductImage, 0, len(details.ImageURLs))
	for _, url := range details.ImageURLs {
		p.Images = append(p.Images, ProductImage{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  p.ID,
			URL:        url,
		})
	}
	p.Colors = make([]ProductColor, 0, len(details.ColorIDs))
	for _, colorID := range details.ColorIDs {
		p.Colors = append(p.Colors, ProductColor{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  p.ID,
			ColorID:    colorID,
		})
	}
	p.Sizes = make([]ProductSize, 0, len(details.SizeIDs))
	for _, sizeID := range details.SizeIDs {
		p.Sizes = append(p.Sizes, ProductSize{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  p.ID,
			SizeID:     sizeID,
		})
	}
}

// ProductRepository persists products and their associations
type ProductRepository interface {
	// FindByID loads the product with images, taxonomy records, and the
	// color/size join rows with their vocabulary entries expanded.
	// Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	// Update writes the scalar fields, clears every image and color/size
	// join row, and recreates them from the entity, all in one transaction.
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
