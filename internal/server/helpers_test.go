package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commune/internal/config"
	"commune/internal/database"
	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server over an in-memory SQLite database with routes
// registered on a fresh Fiber app. Prometheus middleware is left nil so tests
// do not fight over the default registry.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := session.NewStore(db, time.Hour)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	cfg := &config.Config{Port: "0", Env: "test", SessionTTLHours: 1}
	s := &Server{
		config:        cfg,
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		communityRepo: repository.NewCommunityRepository(db),
		postRepo:      repository.NewPostRepository(db),
		sessions:      store,
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// createTestUser persists a user with a bcrypt-hashed password.
func createTestUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, Password: string(hashed)}
	require.NoError(t, db.Create(user).Error)
	return user
}

// loginToken establishes a session for the user and returns its token.
func loginToken(t *testing.T, s *Server, userID uint) string {
	t.Helper()

	sess, err := s.sessions.Create(context.Background(), userID)
	require.NoError(t, err)
	return sess.Token
}

// doJSON performs a JSON request against the app, optionally authenticated
// with a Bearer session token.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes a JSON response body into out.
func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
