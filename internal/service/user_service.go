// Package service provides application business logic (accounts, posts, feeds).
package service

import (
	"context"
	"errors"
	"log/slog"

	"microsns/internal/cache"
	"microsns/internal/events"
	"microsns/internal/middleware"
	"microsns/internal/models"
	"microsns/internal/repository"
	"microsns/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService provides account business logic: registration, login and
// password changes. It holds the raw DB handle for operations that need a
// transaction across reads and writes.
type UserService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
	notifier *events.Notifier
}

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Bio      string
}

// ChangePasswordInput is the input for rotating an account password.
type ChangePasswordInput struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, db *gorm.DB, notifier *events.Notifier) *UserService {
	return &UserService{userRepo: userRepo, db: db, notifier: notifier}
}

// Register validates the input, hashes the password and creates the account.
// A taken email surfaces as a conflict whether it is caught by the pre-check
// or by the unique index on a concurrent insert.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Bio:      in.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, events.EventUserRegistered, map[string]any{
		"user_id": user.ID,
		"name":    user.Name,
	})
	middleware.Logger.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))

	return user, nil
}

// Login verifies the credentials and returns the account. An unknown email
// and a wrong password produce the same error so the response never reveals
// which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthError("Invalid email or password")
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
// The read and the write run in one transaction with the row locked, so two
// concurrent changes cannot interleave between verify and update.
func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.OldPassword == "" || in.NewPassword == "" {
		return models.NewValidationError("Old and new passwords are required")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", in.UserID)
			}
			return models.NewInternalError(err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
			return models.NewAuthError("Old password is incorrect")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", in.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	cache.InvalidateUser(ctx, in.UserID)
	middleware.Logger.InfoContext(ctx, "password changed", slog.Uint64("user_id", uint64(in.UserID)))
	return nil
}
