package service

import (
	"context"

	"pitchbridge/internal/models"
	"pitchbridge/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Name     string
	Bio      string
	Company  string
	Location string
	Avatar   string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile merges the non-empty profile fields into the user record.
// Role is deliberately not part of the input: it is fixed at creation. Only
// the provided columns are written, so credentials and role can never be
// clobbered by a profile edit.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const maxBioLen = 500
	const maxNameLen = 60

	updates := map[string]any{}
	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 60 characters)")
		}
		updates["name"] = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		updates["bio"] = in.Bio
	}
	if in.Company != "" {
		updates["company"] = in.Company
	}
	if in.Location != "" {
		updates["location"] = in.Location
	}
	if in.Avatar != "" {
		updates["avatar"] = in.Avatar
	}

	return s.userRepo.UpdateProfile(ctx, in.UserID, updates)
}
