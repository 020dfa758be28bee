package models

import "time"

// Follow represents a directed edge in the follow graph: FollowerID follows
// FollowingID. The pair must be unique and self-follows are rejected before
// any insert is attempted.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	FollowedAt  time.Time `gorm:"autoCreateTime" json:"followed_at"`

	Follower  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

// FollowEntry is one row of a following/followers listing: the related user
// plus the time the edge was created.
type FollowEntry struct {
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	FollowedAt time.Time `json:"followed_at"`
}

// FollowCounts holds the two independent counts for a user.
type FollowCounts struct {
	FollowingCount int64 `json:"following_count"`
	FollowerCount  int64 `json:"follower_count"`
}
