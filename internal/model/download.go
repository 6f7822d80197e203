package model

import (
	"time"
)

// Download is a best-effort delivery log row. Writing it never blocks or
// rolls back a delivery.
type Download struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	AssetID   string    `db:"asset_id"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// DownloadGrant is the server-side unlock for shortlink monetization.
// It is user-bound and time-boxed but deliberately not asset-scoped:
// one grant opens all restricted downloads until it expires.
type DownloadGrant struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (g *DownloadGrant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}
