package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "impulsa/internal/models/db_models"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *dbm.BusinessProfile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*dbm.BusinessProfile, error)
	ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]dbm.BusinessProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *dbm.BusinessProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*dbm.BusinessProfile, error) {
	var profile dbm.BusinessProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]dbm.BusinessProfile, error) {
	var profiles []dbm.BusinessProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
