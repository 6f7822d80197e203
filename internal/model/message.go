package model

import (
	"time"
)

const (
	MessageText    = "text"
	MessageSticker = "sticker"
)

type Message struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Content    *string   `db:"content"`
	StickerURL *string   `db:"sticker_url"`
	Kind       string    `db:"kind"`
	CreatedAt  time.Time `db:"created_at"`

	// Sender profile, joined on read
	SenderName     string `db:"sender_name"`
	SenderAvatar   string `db:"sender_avatar"`
	SenderRole     string `db:"sender_role"`
	SenderVerified bool   `db:"sender_verified"`
}

type AbuseLog struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	MessageAttempt string    `db:"message_attempt"`
	DetectedWord   string    `db:"detected_word"`
	CreatedAt      time.Time `db:"created_at"`
}
