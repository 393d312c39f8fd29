package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPlatformStats returns aggregate platform numbers for the admin
// dashboard: user and pitch counts plus total committed funding.
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := s.pitchRepo.Stats(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(stats)
}
