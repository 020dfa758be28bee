package server

import (
	"microsns/internal/events"
	"microsns/internal/models"
	"microsns/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const maxCommentContentLen = 1000

// GetCommentsByPost handles GET /api/comments/by-post/:postId
func (s *Server) GetCommentsByPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, comments)
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID  uint   `json:"post_id"`
		UserID  uint   `json:"user_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 || req.UserID == 0 || req.Content == "" {
		return models.RespondWithError(c,
			models.NewValidationError("post_id, user_id, and content are required"))
	}
	if err := validation.ValidateContent(req.Content, maxCommentContentLen); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	comment := &models.Comment{PostID: req.PostID, UserID: req.UserID, Content: req.Content}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return models.RespondWithError(c, err)
	}

	s.notifier.Publish(c.Context(), events.EventCommentCreated, map[string]any{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"author_id":  comment.UserID,
	})

	return models.RespondCreated(c, fiber.Map{"comment_id": comment.ID})
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
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
	if err := validation.ValidateContent(req.Content, maxCommentContentLen); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	affected, err := s.commentRepo.UpdateContent(c.Context(), commentID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}

// DeleteComment handles DELETE /api/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	affected, err := s.commentRepo.Delete(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}
