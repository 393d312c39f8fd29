package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pitchbridge/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRoutedApp builds an app through SetupRoutes itself, so these tests cover
// the real route table and its auth wiring rather than hand-wired routes.
func newRoutedApp(t *testing.T, s *Server) *fiber.App {
	t.Helper()
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp
}

func TestSetupRoutes_BrowsingIsAnonymous(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	founder := createUser(t, db, "routes-founder@example.com", models.RoleEntrepreneur)

	pitch := &models.Pitch{
		Title: "Open Pitch", Description: "d", Category: "SaaS",
		FundingGoal: 1000, FounderID: founder.ID, Status: models.PitchStatusActive,
	}
	require.NoError(t, db.Create(pitch).Error)

	app := newRoutedApp(t, s)

	paths := []string{
		"/health/live",
		"/api/pitches",
		fmt.Sprintf("/api/pitches/%d", pitch.ID),
		"/api/pitches/categories",
		"/api/pitches/search?q=open",
	}
	for _, path := range paths {
		resp := get(t, app, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestSetupRoutes_ProtectedEndpointsRejectAnonymous(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newRoutedApp(t, s)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/pitches/mine"},
		{http.MethodPost, "/api/pitches"},
		{http.MethodPost, "/api/pitches/1/interest"},
		{http.MethodPut, "/api/pitches/1"},
		{http.MethodDelete, "/api/pitches/1"},
		{http.MethodGet, "/api/admin/stats"},
	}
	for _, r := range requests {
		req := httptest.NewRequest(r.method, r.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, r.method+" "+r.path)
	}
}

func TestSetupRoutes_TokenGrantsAccessByRole(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	founder := createUser(t, db, "routes-owner@example.com", models.RoleEntrepreneur)
	investor := createUser(t, db, "routes-investor@example.com", models.RoleInvestor)

	founderToken, err := s.generateToken(founder.ID)
	require.NoError(t, err)
	investorToken, err := s.generateToken(investor.ID)
	require.NoError(t, err)

	app := newRoutedApp(t, s)

	resp := get(t, app, "/api/users/me", founderToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/api/pitches/mine", founderToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/api/pitches/mine", investorToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = get(t, app, "/api/admin/stats", investorToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
