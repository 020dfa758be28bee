// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"microsns/internal/cache"
	"microsns/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and the feed.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	Feed(ctx context.Context, followerID uint) ([]models.Post, error)
	UpdateContent(ctx context.Context, id uint, content string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries resolving the author name and like count
// in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT name FROM users WHERE users.id = posts.user_id) AS author, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID returns the post with author details, or (nil, nil) when no row
// matches. Absence is part of the contract, not an error.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx)).
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.applyPostDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.applyPostDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Feed returns posts authored by any user the follower follows, newest first.
// An empty following set yields an empty slice.
func (r *postRepository) Feed(ctx context.Context, followerID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.applyPostDetails(r.db.WithContext(ctx)).
		Where("user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", followerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) UpdateContent(ctx context.Context, id uint, content string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, id)
	return result.RowsAffected, nil
}

// Delete removes the post together with its comments and likes in one
// transaction, so a removed post never leaves orphan rows behind.
// The returned count covers the post row only; 0 means the id did not exist.
func (r *postRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return affected, nil
}
