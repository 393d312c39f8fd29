package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pitchbridge/internal/cache"
	"pitchbridge/internal/middleware"
	"pitchbridge/internal/models"
	"pitchbridge/internal/observability"
	"pitchbridge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// SignupRequest is the payload for account creation. Role must be
// "entrepreneur" or "investor"; admin accounts are provisioned out of band.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse carries the issued token and the authenticated user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup handles account registration
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleEntrepreneur
	}
	if !role.Valid() || role == models.RoleAdmin {
		observability.AuthAttempts.WithLabelValues("signup", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Role must be entrepreneur or investor"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Role:     role,
	}

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			observability.AuthAttempts.WithLabelValues("signup", "conflict").Inc()
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("An account with this email already exists"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.AuthAttempts.WithLabelValues("signup", "success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user signed up",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", string(user.Role)))

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: user})
}

// Login authenticates a user. The requested role must match the account's
// role: logging into an entrepreneur account "as investor" fails rather than
// silently granting the stored role.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	requestedRole := models.UserRole(req.Role)
	if req.Role != "" && !requestedRole.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown role"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// A single generic 401 for unknown email, wrong password and role
	// mismatch, so the response does not leak which part failed.
	authFailed := func() error {
		observability.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if user == nil {
		// Burn a comparison anyway to keep timing consistent.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4TxAVZT1VYrSz3uCYfGzFMB0S1u"),
			[]byte(req.Password))
		return authFailed()
	}
	if req.Role != "" && user.Role != requestedRole {
		return authFailed()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return authFailed()
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.AuthAttempts.WithLabelValues("login", "success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", string(user.Role)))

	return c.JSON(AuthResponse{Token: token, User: user})
}

// Logout revokes the presented token by blacklisting its JTI until expiry.
// Without Redis, logout is client-side only (discard the token).
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := s.tokenClaims(c)
	if ok && s.redis != nil {
		jti, _ := claims["jti"].(string)
		exp, _ := claims["exp"].(float64)
		if jti != "" && exp > 0 {
			ttl := time.Until(time.Unix(int64(exp), 0))
			if ttl > 0 {
				if err := s.redis.Set(c.Context(), cache.BlacklistKey(jti), "1", ttl).Err(); err != nil {
					middleware.Logger.WarnContext(c.UserContext(), "failed to blacklist token",
						slog.String("error", err.Error()))
				}
			}
		}
	}

	observability.AuthAttempts.WithLabelValues("logout", "success").Inc()
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Refresh issues a new token for the authenticated user.
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID := currentUserID(c)

	token, err := s.generateToken(userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(AuthResponse{Token: token, User: user})
}

// Me returns the authenticated user's account, used by clients to restore a
// session from a stored token.
func (s *Server) Me(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(user)
}

// generateToken creates a signed JWT for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique token identifier for revocation tracking.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}

// tokenClaims re-parses the Authorization header token. Only call on routes
// behind AuthRequired, where the token is known to be valid.
func (s *Server) tokenClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// roleByUserID resolves a user's role, via the cached user lookup.
func (s *Server) roleByUserID(ctx context.Context, userID uint) (models.UserRole, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
