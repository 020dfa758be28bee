// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"comment_id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	UserID  uint   `gorm:"not null" json:"author_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Author is not persisted; resolved from the users table at query time
	Author    string    `gorm:"->" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
