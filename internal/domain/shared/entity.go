package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the identifier and timestamp fields shared by all
// persisted entities. Domain structs are mapped by gorm directly, so the
// column tags live here.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
