package identity

import (
	"context"

	"github.com/storeadmin/backend/internal/domain/shared"
)

// User mirrors an identity-provider account. Rows exist only because the
// provider's webhook announced them; the service never creates or deletes
// users on its own.
type User struct {
	shared.BaseEntity
	ExternalID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"externalId"`
	// Attributes keeps the provider payload, minus the id, as JSON so
	// new provider fields survive without schema changes.
	Attributes string `gorm:"type:jsonb;not null;default:'{}'" json:"attributes"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a mirrored user for the given provider id
func NewUser(externalID, attributes string) (*User, error) {
	if externalID == "" {
		return nil, shared.NewValidationError("External id is required")
	}
	if attributes == "" {
		attributes = "{}"
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Attributes: attributes,
	}, nil
}

// UpdateAttributes replaces the stored provider payload
func (u *User) UpdateAttributes(attributes string) {
	if attributes == "" {
		attributes = "{}"
	}
	u.Attributes = attributes
}

// UserRepository persists mirrored users
type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	// Upsert inserts the user or, when the external id already exists,
	// replaces its attributes. Replays of the same event are therefore
	// harmless.
	Upsert(ctx context.Context, user *User) error
}
