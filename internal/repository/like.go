package repository

import (
	"context"

	"microsns/internal/cache"
	"microsns/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for the like ledger.
type LikeRepository interface {
	Add(ctx context.Context, userID, postID uint) error
	Remove(ctx context.Context, userID, postID uint) (int64, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	ListPostsLikedBy(ctx context.Context, userID uint) ([]models.Post, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Add records a like. The (user_id, post_id) unique index makes a repeat
// like surface as a conflict instead of a second row.
func (r *likeRepository) Add(ctx context.Context, userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewConflictError("Already liked")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *likeRepository) Remove(ctx context.Context, userID, postID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListPostsLikedBy returns the posts a user has liked, most recent like first.
func (r *likeRepository) ListPostsLikedBy(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, "+
			"(SELECT name FROM users WHERE users.id = posts.user_id) AS author, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
