package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storeadmin/backend/internal/domain/identity"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByExternalID finds a user by the identity provider's id
func (r *GormUserRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or replaces the attributes of the existing row
// with the same external id. Event replays converge on the same row.
func (r *GormUserRepository) Upsert(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"attributes", "updated_at"}),
		}).
		Create(user).Error
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
