package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeadmin/backend/internal/domain/catalog"
)

// ImageInput is one image reference from the admin form
type ImageInput struct {
	URL string `json:"url"`
}

// ProductRequest is the admin form submission for creating or updating a
// product. The form always sends the complete record, so there are no
// partial-update semantics; an omitted field reads as its zero value and
// fails the required check.
type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Info          string          `json:"info"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    uuid.UUID       `json:"categoryId"`
	SubcategoryID uuid.UUID       `json:"subcategoryId"`
	SubsubID      uuid.UUID       `json:"subsubId"`
	Images        []ImageInput    `json:"images"`
	Colors        []uuid.UUID     `json:"colors"`
	Sizes         []uuid.UUID     `json:"sizes"`
	IsFeatured    bool            `json:"isFeatured"`
	IsArchived    bool            `json:"isArchived"`
	IsOffered     bool            `json:"isOffered"`
	IsUndercost   bool            `json:"isUndercost"`
}

// ToDetails converts the request to domain product details
func (r ProductRequest) ToDetails() catalog.ProductDetails {
	urls := make([]string, 0, len(r.Images))
	for _, image := range r.Images {
		urls = append(urls, image.URL)
	}
	return catalog.ProductDetails{
		Name:          r.Name,
		Description:   r.Description,
		Info:          r.Info,
		ImageURLs:     urls,
		Quantity:      r.Quantity,
		Price:         r.Price,
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		SubsubID:      r.SubsubID,
		ColorIDs:      r.Colors,
		SizeIDs:       r.Sizes,
		IsFeatured:    r.IsFeatured,
		IsArchived:    r.IsArchived,
		IsOffered:     r.IsOffered,
		IsUndercost:   r.IsUndercost,
	}
}

// AttributeRequest creates a store-scoped color or size
type AttributeRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
