package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type Profile struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	AvatarURL   string    `db:"avatar_url"`
	BannerURL   string    `db:"banner_url"`
	Bio         string    `db:"bio"`
	Role        string    `db:"role"`
	Status      string    `db:"status"`
	IsVerified  bool      `db:"is_verified"`
	CreatedAt   time.Time `db:"created_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Profile) IsBlocked() bool {
	return p.Status == StatusBlocked
}
