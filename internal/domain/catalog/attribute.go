package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/storeadmin/backend/internal/domain/shared"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Color is a store-scoped color option products can reference.
// Value holds the hex representation shown as a swatch in the dashboard.
type Color struct {
	shared.StoreEntity
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Value string `gorm:"type:varchar(16);not null" json:"value"`
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}

// Size is a store-scoped size option products can reference.
type Size struct {
	shared.StoreEntity
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Value string `gorm:"type:varchar(16);not null" json:"value"`
}

// TableName returns the table name for GORM
func (Size) TableName() string {
	return "sizes"
}

// NewColor creates a store-scoped color, validating the hex value
func NewColor(storeID uuid.UUID, name, value string) (*Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	if !hexColorPattern.MatchString(value) {
		return nil, shared.NewValidationError("Value must be a hex color")
	}
	return &Color{
		StoreEntity: shared.NewStoreEntity(storeID),
		Name:        name,
		Value:       value,
	}, nil
}

// NewSize creates a store-scoped size
func NewSize(storeID uuid.UUID, name, value string) (*Size, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	if strings.TrimSpace(value) == "" {
		return nil, shared.NewValidationError("Value is required")
	}
	return &Size{
		StoreEntity: shared.NewStoreEntity(storeID),
		Name:        name,
		Value:       value,
	}, nil
}

// AttributeRepository persists the store color and size vocabularies
type AttributeRepository interface {
	Colors(ctx context.Context, storeID uuid.UUID) ([]Color, error)
	Sizes(ctx context.Context, storeID uuid.UUID) ([]Size, error)
	SaveColor(ctx context.Context, color *Color) error
	SaveSize(ctx context.Context, size *Size) error
}
