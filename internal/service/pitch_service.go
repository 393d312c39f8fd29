// Package service implements domain logic between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"strings"

	"pitchbridge/internal/models"
	"pitchbridge/internal/repository"
)

// PitchService enforces pitch invariants that the store-level spec left to
// callers: required fields, positive funding goal, known status values, and
// founder/admin ownership on mutations.
type PitchService struct {
	pitchRepo repository.PitchRepository
	userRepo  repository.UserRepository
}

// CreatePitchInput carries the caller-supplied pitch attributes. Identifier,
// creation date, funding and interest membership are store-assigned.
type CreatePitchInput struct {
	FounderID    uint
	Title        string
	Description  string
	Category     string
	FundingGoal  float64
	PitchDeckURL string
	Tags         []string
}

// UpdatePitchInput is a partial update; nil fields are left untouched.
type UpdatePitchInput struct {
	Title          *string
	Description    *string
	Category       *string
	FundingGoal    *float64
	CurrentFunding *float64
	PitchDeckURL   *string
	Status         *models.PitchStatus
	Tags           []string
}

// NewPitchService creates a PitchService backed by the given repositories.
func NewPitchService(pitchRepo repository.PitchRepository, userRepo repository.UserRepository) *PitchService {
	return &PitchService{pitchRepo: pitchRepo, userRepo: userRepo}
}

// CreatePitch validates the input, denormalizes the founder's name and email
// onto the record and persists it.
func (s *PitchService) CreatePitch(ctx context.Context, in CreatePitchInput) (*models.Pitch, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.FundingGoal <= 0 {
		return nil, models.NewValidationError("Funding goal must be positive")
	}

	founder, err := s.userRepo.GetByID(ctx, in.FounderID)
	if err != nil {
		return nil, err
	}
	if founder.Role != models.RoleEntrepreneur && founder.Role != models.RoleAdmin {
		return nil, models.NewUnauthorizedError("Only entrepreneurs can create pitches")
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	pitch := &models.Pitch{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     strings.TrimSpace(in.Category),
		FundingGoal:  in.FundingGoal,
		FounderID:    founder.ID,
		FounderName:  founder.Name,
		FounderEmail: founder.Email,
		PitchDeckURL: in.PitchDeckURL,
		Status:       models.PitchStatusActive,
		Tags:         tags,
	}

	if err := s.pitchRepo.Create(ctx, pitch); err != nil {
		return nil, err
	}

	// Re-read so computed fields and preloads are populated for the response.
	return s.pitchRepo.GetByID(ctx, pitch.ID, in.FounderID)
}

// UpdatePitch shallow-merges the provided fields into the pitch after
// checking that actorID owns it or is an admin.
func (s *PitchService) UpdatePitch(ctx context.Context, actorID, pitchID uint, in UpdatePitchInput) (*models.Pitch, error) {
	pitch, err := s.pitchRepo.GetByID(ctx, pitchID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnerOrAdmin(ctx, actorID, pitch); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		pitch.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, models.NewValidationError("Description cannot be empty")
		}
		pitch.Description = *in.Description
	}
	if in.Category != nil {
		pitch.Category = strings.TrimSpace(*in.Category)
	}
	if in.FundingGoal != nil {
		if *in.FundingGoal <= 0 {
			return nil, models.NewValidationError("Funding goal must be positive")
		}
		pitch.FundingGoal = *in.FundingGoal
	}
	if in.CurrentFunding != nil {
		// Over-goal funding is allowed; negative funding is not.
		if *in.CurrentFunding < 0 {
			return nil, models.NewValidationError("Current funding cannot be negative")
		}
		pitch.CurrentFunding = *in.CurrentFunding
	}
	if in.PitchDeckURL != nil {
		pitch.PitchDeckURL = *in.PitchDeckURL
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, models.NewValidationError("Unknown pitch status")
		}
		pitch.Status = *in.Status
	}
	if in.Tags != nil {
		pitch.Tags = in.Tags
	}

	if err := s.pitchRepo.Update(ctx, pitch); err != nil {
		return nil, err
	}
	return pitch, nil
}

// DeletePitch removes the pitch permanently after an ownership check.
func (s *PitchService) DeletePitch(ctx context.Context, actorID, pitchID uint) error {
	pitch, err := s.pitchRepo.GetByID(ctx, pitchID, actorID)
	if err != nil {
		return err
	}
	if err := s.requireOwnerOrAdmin(ctx, actorID, pitch); err != nil {
		return err
	}
	return s.pitchRepo.Delete(ctx, pitchID)
}

// ToggleInterest flips the investor's membership in the pitch's interest set
// and returns the resulting state.
func (s *PitchService) ToggleInterest(ctx context.Context, investorID, pitchID uint) (bool, error) {
	investor, err := s.userRepo.GetByID(ctx, investorID)
	if err != nil {
		return false, err
	}
	if investor.Role != models.RoleInvestor {
		return false, models.NewUnauthorizedError("Only investors can express interest")
	}
	return s.pitchRepo.ToggleInterest(ctx, pitchID, investorID)
}

func (s *PitchService) requireOwnerOrAdmin(ctx context.Context, actorID uint, pitch *models.Pitch) error {
	if pitch.FounderID == actorID {
		return nil
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return models.NewUnauthorizedError("You can only manage your own pitches")
	}
	return nil
}
