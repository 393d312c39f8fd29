package server

import (
	"strconv"
	"strings"

	"pitchbridge/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error response
// and the caller should simply return nil.
var errResponseWritten = &models.AppError{Code: "RESPONSE_WRITTEN", Message: "response already written"}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID parses a numeric route param. On failure it writes a 400 response
// and returns errResponseWritten so handlers can bail out with `return nil`.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseFundingQuery parses a non-negative float query param. On failure it
// writes a 400 response and returns errResponseWritten, like parseID.
func parseFundingQuery(c *fiber.Ctx, param string) (float64, error) {
	raw := strings.TrimSpace(c.Query(param))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return v, nil
}

// humanizeParam turns "id" into "id" and "pitch_id" into "pitch id" for
// error messages.
func humanizeParam(param string) string {
	return strings.ReplaceAll(param, "_", " ")
}

// currentUserID returns the authenticated user's ID from locals. It panics if
// called on a route without AuthRequired, which is a programming error.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// statusForAppError maps domain error codes to HTTP statuses.
func statusForAppError(err *models.AppError) int {
	switch err.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "CONFLICT":
		return fiber.StatusConflict
	case "UNAUTHORIZED":
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondDomainError writes the right status for a service/repository error.
func respondDomainError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		return models.RespondWithError(c, statusForAppError(appErr), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
