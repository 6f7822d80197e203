package model

import (
	"time"
)

const (
	AssetPending  = "pending"
	AssetApproved = "approved"
	AssetRejected = "rejected"
)

// File kinds of an asset. PNG is the free preview; PLP and XML are the
// restricted source files behind the download gate.
const (
	KindPNG = "png"
	KindPLP = "plp"
	KindXML = "xml"
)

type Asset struct {
	ID              string    `db:"id"`
	UploaderID      *string   `db:"uploader_id"` // Nullable for legacy admin uploads
	Title           string    `db:"title"`
	Category        string    `db:"category"`
	Description     string    `db:"description"`
	AIPrompt        string    `db:"ai_prompt"`
	URLPNG          string    `db:"url_png"`
	URLPLP          *string   `db:"url_plp"`
	URLXML          *string   `db:"url_xml"`
	Status          string    `db:"status"`
	RejectionReason *string   `db:"rejection_reason"`
	Views           int64     `db:"views"`
	Downloads       int64     `db:"downloads"`
	Likes           int64     `db:"likes"`
	CreatedAt       time.Time `db:"created_at"`
}

// FileURL returns the content reference for the given kind, or "" if the
// asset has no file of that kind.
func (a *Asset) FileURL(kind string) string {
	switch kind {
	case KindPNG:
		return a.URLPNG
	case KindPLP:
		if a.URLPLP != nil {
			return *a.URLPLP
		}
	case KindXML:
		if a.URLXML != nil {
			return *a.URLXML
		}
	}
	return ""
}

// Restricted reports whether the kind is gated content. Only the preview
// image is free; everything else goes through the download gate.
func Restricted(kind string) bool {
	return kind != KindPNG
}
