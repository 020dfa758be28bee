package repository

import (
	"context"

	"microsns/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for the follow graph.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) (int64, error)
	Following(ctx context.Context, userID uint) ([]models.FollowEntry, error)
	Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error)
	Counts(ctx context.Context, userID uint) (*models.FollowCounts, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) error {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("Already following")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// Following lists the users this user follows, newest edge first.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	entries := []models.FollowEntry{}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("users.id AS user_id, users.name, users.email, follows.followed_at").
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.followed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// Followers lists the users following this user, newest edge first.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	entries := []models.FollowEntry{}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("users.id AS user_id, users.name, users.email, follows.followed_at").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ?", userID).
		Order("follows.followed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (*models.FollowCounts, error) {
	var counts models.FollowCounts
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&counts.FollowingCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&counts.FollowerCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &counts, nil
}
