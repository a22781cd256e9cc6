package server

import (
	"commune/internal/models"
	"commune/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/communities/:id/posts. Reading posts requires
// neither authentication nor membership.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.ListByCommunity(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/communities/:id/posts. The community-existence
// check lives here, not in the repository: the handler must confirm the
// community exists before the insert is attempted. AuthorID and CreatedAt are
// server-assigned.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.InsertPost
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.ValidateInsertPost(req); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidInputError(errs))
	}

	community, err := s.communityRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if community == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Community", id))
	}

	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		CommunityID: id,
		AuthorID:    currentUserID(c),
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
