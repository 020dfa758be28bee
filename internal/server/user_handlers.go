package server

import (
	"microsns/internal/models"
	"microsns/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Bio      string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondCreated(c, fiber.Map{"user_id": user.ID})
}

// Login handles POST /api/users/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondOK(c, user)
}

// ChangePassword handles POST /api/users/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"user_id"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("user_id, oldPassword, and newPassword are required"))
	}

	if err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:      req.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondOK(c, nil)
}

// SearchUsers handles GET /api/users/search?keyword=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	const searchLimit = 20

	users, err := s.userRepo.SearchByName(c.Context(), c.Query("keyword"), searchLimit)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondOK(c, users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondOK(c, user)
}
