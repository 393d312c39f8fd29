package service

import (
	"context"
	"testing"

	"pitchbridge/internal/models"
	"pitchbridge/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*PitchService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Pitch{}, &models.PitchInterest{}))

	pitchRepo := repository.NewPitchRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewPitchService(pitchRepo, userRepo), db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", Name: "U " + email, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreatePitch_DenormalizesFounder(t *testing.T) {
	t.Parallel()

	svc, db := setupServiceTest(t)
	founder := seedUser(t, db, "f@example.com", models.RoleEntrepreneur)

	pitch, err := svc.CreatePitch(context.Background(), CreatePitchInput{
		FounderID:   founder.ID,
		Title:       "  Spaced Out  ",
		Description: "d",
		FundingGoal: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Spaced Out", pitch.Title)
	assert.Equal(t, founder.Name, pitch.FounderName)
	assert.Equal(t, founder.Email, pitch.FounderEmail)
	assert.Equal(t, models.PitchStatusActive, pitch.Status)
	assert.NotNil(t, pitch.Tags)
	assert.Empty(t, pitch.Tags)
}

func TestCreatePitch_Validation(t *testing.T) {
	t.Parallel()

	svc, db := setupServiceTest(t)
	founder := seedUser(t, db, "f2@example.com", models.RoleEntrepreneur)
	investor := seedUser(t, db, "i2@example.com", models.RoleInvestor)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePitchInput
	}{
		{"Blank Title", CreatePitchInput{FounderID: founder.ID, Title: "   ", Description: "d", FundingGoal: 1}},
		{"Blank Description", CreatePitchInput{FounderID: founder.ID, Title: "t", Description: " ", FundingGoal: 1}},
		{"Zero Goal", CreatePitchInput{FounderID: founder.ID, Title: "t", Description: "d", FundingGoal: 0}},
		{"Negative Goal", CreatePitchInput{FounderID: founder.ID, Title: "t", Description: "d", FundingGoal: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePitch(ctx, tt.input)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}

	t.Run("Investor Founder Rejected", func(t *testing.T) {
		_, err := svc.CreatePitch(ctx, CreatePitchInput{
			FounderID: investor.ID, Title: "t", Description: "d", FundingGoal: 1,
		})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

func TestUpdatePitch_MergesFields(t *testing.T) {
	t.Parallel()

	svc, db := setupServiceTest(t)
	founder := seedUser(t, db, "f3@example.com", models.RoleEntrepreneur)
	ctx := context.Background()

	created, err := svc.CreatePitch(ctx, CreatePitchInput{
		FounderID: founder.ID, Title: "Original", Description: "Desc",
		Category: "SaaS", FundingGoal: 1000, Tags: []string{"a"},
	})
	require.NoError(t, err)

	newTitle := "Renamed"
	newFunding := 750.0
	updated, err := svc.UpdatePitch(ctx, founder.ID, created.ID, UpdatePitchInput{
		Title:          &newTitle,
		CurrentFunding: &newFunding,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 750.0, updated.CurrentFunding)
	assert.Equal(t, "Desc", updated.Description)
	assert.Equal(t, "SaaS", updated.Category)
	assert.Equal(t, []string{"a"}, updated.Tags)
}

func TestToggleInterest_RequiresInvestorRole(t *testing.T) {
	t.Parallel()

	svc, db := setupServiceTest(t)
	founder := seedUser(t, db, "f4@example.com", models.RoleEntrepreneur)
	investor := seedUser(t, db, "i4@example.com", models.RoleInvestor)
	admin := seedUser(t, db, "a4@example.com", models.RoleAdmin)
	ctx := context.Background()

	pitch, err := svc.CreatePitch(ctx, CreatePitchInput{
		FounderID: founder.ID, Title: "t", Description: "d", FundingGoal: 1,
	})
	require.NoError(t, err)

	interested, err := svc.ToggleInterest(ctx, investor.ID, pitch.ID)
	require.NoError(t, err)
	assert.True(t, interested)

	_, err = svc.ToggleInterest(ctx, founder.ID, pitch.ID)
	require.Error(t, err)

	// Admins browse but do not invest
	_, err = svc.ToggleInterest(ctx, admin.ID, pitch.ID)
	require.Error(t, err)
}

func TestDeletePitch_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	svc, db := setupServiceTest(t)
	founder := seedUser(t, db, "f5@example.com", models.RoleEntrepreneur)
	rival := seedUser(t, db, "r5@example.com", models.RoleEntrepreneur)
	admin := seedUser(t, db, "a5@example.com", models.RoleAdmin)
	ctx := context.Background()

	pitch, err := svc.CreatePitch(ctx, CreatePitchInput{
		FounderID: founder.ID, Title: "t", Description: "d", FundingGoal: 1,
	})
	require.NoError(t, err)

	err = svc.DeletePitch(ctx, rival.ID, pitch.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	// Admin can remove any pitch
	require.NoError(t, svc.DeletePitch(ctx, admin.ID, pitch.ID))
}
