package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/storeadmin/backend/internal/domain/shared"
)

// Store represents one merchant-facing shop. Ownership is carried as the
// external identity-provider user id of the merchant who created it, not a
// local user reference, because identity lives in the external provider.
type Store struct {
	shared.BaseEntity
	Name   string `gorm:"type:varchar(200);not null" json:"name"`
	UserID string `gorm:"type:varchar(64);not null;index" json:"userId"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store owned by the given external user
func NewStore(name, userID string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	if userID == "" {
		return nil, shared.ErrUnauthorized
	}
	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		UserID:     userID,
	}, nil
}

// IsOwnedBy reports whether the given external user owns this store
func (s *Store) IsOwnedBy(userID string) bool {
	return userID != "" && s.UserID == userID
}

// StoreRepository persists stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	// FindByIDAndUser resolves the store only when the given external user
	// owns it; shared.ErrNotFound otherwise.
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*Store, error)
	Save(ctx context.Context, store *Store) error
}
