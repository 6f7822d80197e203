package model

import (
	"time"
)

type Comment struct {
	ID        string    `db:"id"`
	AssetID   string    `db:"asset_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`

	SenderName     string `db:"sender_name"`
	SenderAvatar   string `db:"sender_avatar"`
	SenderRole     string `db:"sender_role"`
	SenderVerified bool   `db:"sender_verified"`
}

type Follow struct {
	FollowerID  string    `db:"follower_id"`
	FollowingID string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type Like struct {
	AssetID   string    `db:"asset_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
