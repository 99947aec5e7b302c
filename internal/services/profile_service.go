package services

import (
	"context"

	"github.com/google/uuid"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/repositories"
	"impulsa/pkg/utils"
)

type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, userID string, req request_models.CreateProfileRequest) (*response_models.ProfileResponse, error)
	ListProfiles(ctx context.Context, userID string) ([]response_models.ProfileResponse, error)
}

type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileServiceInterface {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) CreateProfile(ctx context.Context, userID string, req request_models.CreateProfileRequest) (*response_models.ProfileResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	profile := &dbm.BusinessProfile{
		UserID:      uid,
		Name:        req.Name,
		Sector:      req.Sector,
		Size:        req.Size,
		Description: req.Description,
	}
	if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return buildProfileResponse(profile), nil
}

func (s *ProfileService) ListProfiles(ctx context.Context, userID string) ([]response_models.ProfileResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	profiles, err := s.profileRepo.ListProfilesByUser(ctx, uid)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *buildProfileResponse(&profiles[i]))
	}
	return out, nil
}

func buildProfileResponse(p *dbm.BusinessProfile) *response_models.ProfileResponse {
	return &response_models.ProfileResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Sector:      p.Sector,
		Size:        p.Size,
		Description: p.Description,
	}
}
