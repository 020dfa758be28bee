package server

import (
	"microsns/internal/events"
	"microsns/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddLike handles POST /api/likes
func (s *Server) AddLike(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.PostID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("user_id and post_id are required"))
	}

	if err := s.likeRepo.Add(c.Context(), req.UserID, req.PostID); err != nil {
		return models.RespondWithError(c, err)
	}

	s.notifier.Publish(c.Context(), events.EventPostLikeUpdated, map[string]any{
		"post_id": req.PostID,
		"user_id": req.UserID,
		"liked":   true,
	})

	return models.RespondCreated(c, nil)
}

// RemoveLike handles DELETE /api/likes. Removing a like that was never added
// is not an error; affectedRows is simply 0.
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.PostID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("user_id and post_id are required"))
	}

	affected, err := s.likeRepo.Remove(c.Context(), req.UserID, req.PostID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if affected > 0 {
		s.notifier.Publish(c.Context(), events.EventPostLikeUpdated, map[string]any{
			"post_id": req.PostID,
			"user_id": req.UserID,
			"liked":   false,
		})
	}

	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}

// GetLikeCount handles GET /api/likes/count/:postId
func (s *Server) GetLikeCount(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	count, err := s.likeRepo.CountForPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, fiber.Map{"like_count": count})
}

// GetLikedPosts handles GET /api/likes/by-user/:userId
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.likeRepo.ListPostsLikedBy(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, posts)
}
