// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a text post authored by a user.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"post_id"`
	UserID  uint   `gorm:"not null;index" json:"author_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Author is not persisted; resolved from the users table at query time
	Author string `gorm:"->" json:"author,omitempty"`
	// LikeCount is not persisted; computed at query time
	LikeCount int       `gorm:"->" json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
