package server

import (
	"pitchbridge/internal/models"
	"pitchbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest carries the editable profile fields. Empty fields are
// left untouched; email, password and role are not editable here.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Avatar   string `json:"avatar"`
}

// GetMyProfile returns the authenticated user's profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile updates the authenticated user's profile fields.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Name:     req.Name,
		Bio:      req.Bio,
		Company:  req.Company,
		Location: req.Location,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile returns a user's public profile by ID.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(user)
}

// GetUserPitches returns a user's pitches, newest first.
func (s *Server) GetUserPitches(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	limit, offset := parsePagination(c)
	viewerID := currentUserID(c)

	pitches, err := s.pitchRepo.GetByFounderID(c.Context(), id, limit, offset, viewerID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(pitches)
}

// GetAllUsers returns all users, paginated. Admin only.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(users)
}
