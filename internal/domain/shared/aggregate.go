package shared

import (
	"github.com/google/uuid"
)

// StoreEntity extends BaseEntity with the owning store. Every resource the
// dashboard manages is scoped to exactly one store; cross-store access is a
// domain error, not a filter concern.
//
// There is deliberately no version column here: writes are last-write-wins
// and consistency is delegated to the database's row-level guarantees.
type StoreEntity struct {
	BaseEntity
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"storeId"`
}

// NewStoreEntity creates a new store-scoped entity
func NewStoreEntity(storeID uuid.UUID) StoreEntity {
	return StoreEntity{
		BaseEntity: NewBaseEntity(),
		StoreID:    storeID,
	}
}
