package server

import (
	"microsns/internal/events"
	"microsns/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follows
func (s *Server) Follow(c *fiber.Ctx) error {
	var req struct {
		FollowerID  uint `json:"follower_id"`
		FollowingID uint `json:"following_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.FollowerID == 0 || req.FollowingID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("follower_id and following_id are required"))
	}
	if req.FollowerID == req.FollowingID {
		return models.RespondWithError(c,
			models.NewValidationError("Cannot follow yourself"))
	}

	if err := s.followRepo.Create(c.Context(), req.FollowerID, req.FollowingID); err != nil {
		return models.RespondWithError(c, err)
	}

	s.notifier.Publish(c.Context(), events.EventFollowUpdated, map[string]any{
		"follower_id":  req.FollowerID,
		"following_id": req.FollowingID,
		"following":    true,
	})

	return models.RespondCreated(c, nil)
}

// Unfollow handles DELETE /api/follows
func (s *Server) Unfollow(c *fiber.Ctx) error {
	var req struct {
		FollowerID  uint `json:"follower_id"`
		FollowingID uint `json:"following_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.FollowerID == 0 || req.FollowingID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("follower_id and following_id are required"))
	}

	affected, err := s.followRepo.Delete(c.Context(), req.FollowerID, req.FollowingID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if affected > 0 {
		s.notifier.Publish(c.Context(), events.EventFollowUpdated, map[string]any{
			"follower_id":  req.FollowerID,
			"following_id": req.FollowingID,
			"following":    false,
		})
	}

	return models.RespondOK(c, fiber.Map{"affectedRows": affected})
}

// GetFollowing handles GET /api/follows/following/:userId
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	entries, err := s.followRepo.Following(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, entries)
}

// GetFollowers handles GET /api/follows/followers/:userId
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	entries, err := s.followRepo.Followers(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, entries)
}

// GetFollowCounts handles GET /api/follows/count/:userId
func (s *Server) GetFollowCounts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	counts, err := s.followRepo.Counts(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, counts)
}
