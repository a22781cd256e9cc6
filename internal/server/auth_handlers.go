package server

import (
	"time"

	"commune/internal/models"
	"commune/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// setSessionCookie attaches the session token to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
	})
}

// Register handles POST /api/register. It creates the user and establishes a
// session so the caller is logged in immediately.
func (s *Server) Register(c *fiber.Ctx) error {
	var req models.InsertUser
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.ValidateInsertUser(req); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidInputError(errs))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStoreError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Password:  string(hashed),
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "UNIQUE_VIOLATION" {
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	sess, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStoreError(err))
	}
	s.setSessionCookie(c, sess.Token, sess.ExpiresAt)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": sess.Token,
		"user":  user,
	})
}

// Login handles POST /api/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	sess, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStoreError(err))
	}
	s.setSessionCookie(c, sess.Token, sess.ExpiresAt)

	return c.JSON(fiber.Map{
		"token": sess.Token,
		"user":  user,
	})
}

// Logout handles POST /api/logout. Logging out without a session is a no-op.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := sessionToken(c); token != "" {
		if err := s.sessions.Destroy(c.Context(), token); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewStoreError(err))
		}
	}
	c.ClearCookie(sessionCookie)
	return c.SendStatus(fiber.StatusOK)
}

// CurrentUser handles GET /api/user and returns the authenticated identity.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		// Session points at a user row that no longer exists.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Unauthorized"))
	}
	return c.JSON(user)
}
