package server

import (
	"log/slog"
	"strings"

	"pitchbridge/internal/middleware"
	"pitchbridge/internal/models"
	"pitchbridge/internal/observability"
	"pitchbridge/internal/repository"
	"pitchbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePitchRequest is the payload for pitch creation.
type CreatePitchRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	FundingGoal  float64  `json:"funding_goal"`
	PitchDeckURL string   `json:"pitch_deck_url"`
	Tags         []string `json:"tags"`
}

// UpdatePitchRequest is a partial update; absent fields are left untouched.
type UpdatePitchRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	FundingGoal    *float64 `json:"funding_goal"`
	CurrentFunding *float64 `json:"current_funding"`
	PitchDeckURL   *string  `json:"pitch_deck_url"`
	Status         *string  `json:"status"`
	Tags           []string `json:"tags"`
}

// GetPitches returns pitches newest-first, optionally filtered by category,
// status and funding-goal range query params. Works for both anonymous and
// authenticated viewers; the latter get their interest flag populated.
func (s *Server) GetPitches(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	viewerID, _ := s.optionalUserID(c)

	filter := repository.PitchFilter{
		Category: strings.TrimSpace(c.Query("category")),
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		ps := models.PitchStatus(status)
		if !ps.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unknown pitch status"))
		}
		filter.Status = ps
	}

	var err error
	if filter.MinFundingGoal, err = parseFundingQuery(c, "min_funding"); err != nil {
		return nil
	}
	if filter.MaxFundingGoal, err = parseFundingQuery(c, "max_funding"); err != nil {
		return nil
	}
	if filter.MaxFundingGoal > 0 && filter.MinFundingGoal > filter.MaxFundingGoal {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("min_funding cannot exceed max_funding"))
	}

	pitches, err := s.pitchRepo.List(c.Context(), filter, limit, offset, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitches)
}

// SearchPitches performs a substring search over title and description.
func (s *Server) SearchPitches(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	if len(query) > 200 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query too long"))
	}

	limit, offset := parsePagination(c)
	viewerID, _ := s.optionalUserID(c)

	pitches, err := s.pitchRepo.Search(c.Context(), query, limit, offset, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitches)
}

// GetCategories returns the distinct categories in use.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.pitchRepo.Categories(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetMyPitches returns the authenticated founder's pitches.
func (s *Server) GetMyPitches(c *fiber.Ctx) error {
	userID := currentUserID(c)
	limit, offset := parsePagination(c)

	pitches, err := s.pitchRepo.GetByFounderID(c.Context(), userID, limit, offset, userID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitches)
}

// GetPitch returns a single pitch by ID.
func (s *Server) GetPitch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	pitch, err := s.pitchRepo.GetByID(c.Context(), id, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitch)
}

// CreatePitch creates a new pitch for the authenticated entrepreneur.
func (s *Server) CreatePitch(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreatePitchRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pitch, err := s.pitchService.CreatePitch(c.Context(), service.CreatePitchInput{
		FounderID:    userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		FundingGoal:  req.FundingGoal,
		PitchDeckURL: req.PitchDeckURL,
		Tags:         req.Tags,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	observability.PitchesCreated.WithLabelValues(pitch.Category).Inc()
	middleware.Logger.InfoContext(c.UserContext(), "pitch created",
		slog.Uint64("pitch_id", uint64(pitch.ID)),
		slog.String("category", pitch.Category))

	return c.Status(fiber.StatusCreated).JSON(pitch)
}

// UpdatePitch applies a partial update after an ownership check.
func (s *Server) UpdatePitch(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req UpdatePitchRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdatePitchInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		FundingGoal:    req.FundingGoal,
		CurrentFunding: req.CurrentFunding,
		PitchDeckURL:   req.PitchDeckURL,
		Tags:           req.Tags,
	}
	if req.Status != nil {
		status := models.PitchStatus(*req.Status)
		in.Status = &status
	}

	pitch, err := s.pitchService.UpdatePitch(c.Context(), userID, id, in)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitch)
}

// DeletePitch removes a pitch after an ownership check.
func (s *Server) DeletePitch(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pitchService.DeletePitch(c.Context(), userID, id); err != nil {
		return respondDomainError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "pitch deleted",
		slog.Uint64("pitch_id", uint64(id)))

	return c.JSON(fiber.Map{"message": "Pitch deleted successfully"})
}

// ToggleInterest flips the authenticated investor's interest in a pitch and
// returns the resulting state.
func (s *Server) ToggleInterest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	interested, err := s.pitchService.ToggleInterest(c.Context(), userID, id)
	if err != nil {
		return respondDomainError(c, err)
	}

	state := "removed"
	if interested {
		state = "added"
	}
	observability.InterestToggles.WithLabelValues(state).Inc()

	return c.JSON(fiber.Map{"interested": interested})
}
