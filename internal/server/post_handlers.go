package server

import (
	"microsns/internal/events"
	"microsns/internal/models"
	"microsns/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const maxPostContentLen = 5000

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, posts)
}

// GetUserPosts handles GET /api/posts/user/:id
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, posts)
}

// GetFeed handles GET /api/posts/feed/:followerId
func (s *Server) GetFeed(c *fiber.Ctx) error {
	followerID, err := s.parseID(c, "followerId")
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.Feed(c.Context(), followerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, posts)
}

// GetPost handles GET /api/posts/:postId. A missing post is not an error:
// the response is 200 with data null.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		UserID  uint   `json:"user_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.Content == "" {
		return models.RespondWithError(c,
			models.NewValidationError("user_id and content are required"))
	}
	if err := validation.ValidateContent(req.Content, maxPostContentLen); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	post := &models.Post{UserID: req.UserID, Content: req.Content}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, err)
	}

	s.notifier.Publish(c.Context(), events.EventPostCreated, map[string]any{
		"post_id":   post.ID,
		"author_id": post.UserID,
	})

	return models.RespondCreated(c, fiber.Map{"post_id": post.ID})
}

// UpdatePost handles PUT /api/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, models.NewValidationError("content is required"))
	}
	if err := validation.ValidateContent(req.Content, maxPostContentLen); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	affected, err := s.postRepo.UpdateContent(c.Context(), postID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if affected > 0 {
		s.notifier.Publish(c.Context(), events.EventPostUpdated, map[string]any{
			"post_id": postID,
		})
	}

	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}

// DeletePost handles DELETE /api/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	affected, err := s.postRepo.Delete(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if affected > 0 {
		s.notifier.Publish(c.Context(), events.EventPostDeleted, map[string]any{
			"post_id": postID,
		})
	}

	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}
