package server

import (
	"commune/internal/models"
	"commune/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListCommunities handles GET /api/communities. The optional q parameter
// filters by case-insensitive substring match on name or description.
func (s *Server) ListCommunities(c *fiber.Ctx) error {
	communities, err := s.communityRepo.List(c.Context(), c.Query("q"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(communities)
}

// GetCommunity handles GET /api/communities/:id.
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if community == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Community", id))
	}
	return c.JSON(community)
}

// CreateCommunity handles POST /api/communities. CreatorID and CreatedAt are
// server-assigned. Creating a community does not join the creator to it; that
// is a separate, explicit action.
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req models.InsertCommunity
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.ValidateInsertCommunity(req); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidInputError(errs))
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		IsLocal:     req.IsLocal,
		CreatorID:   currentUserID(c),
	}
	if err := s.communityRepo.Create(c.Context(), community); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(community)
}

// JoinCommunity handles POST /api/communities/:id/join.
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if community == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Community", id))
	}

	if err := s.communityRepo.Join(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// LeaveCommunity handles POST /api/communities/:id/leave. Leaving a community
// the caller never joined succeeds as a no-op.
func (s *Server) LeaveCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if community == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Community", id))
	}

	if err := s.communityRepo.Leave(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
