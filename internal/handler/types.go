package handler

import (
	"time"

	"github.com/logoforge/logoforge/internal/model"
)

// Response shapes live here so the same entity serializes identically
// across endpoints. Models are never marshalled directly: internal
// fields like password hashes and rejection reasons must not leak
// through a public response.

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Verified: u.IsVerified(),
	}
}

type profileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	BannerURL   string    `json:"banner_url"`
	Bio         string    `json:"bio"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		BannerURL:   p.BannerURL,
		Bio:         p.Bio,
		Role:        p.Role,
		Status:      p.Status,
		IsVerified:  p.IsVerified,
		CreatedAt:   p.CreatedAt,
	}
}

type assetResponse struct {
	ID          string    `json:"id"`
	UploaderID  *string   `json:"uploader_id,omitempty"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	AIPrompt    string    `json:"ai_prompt,omitempty"`
	PreviewURL  string    `json:"preview_url"`
	HasProject  bool      `json:"has_project"`
	HasVector   bool      `json:"has_vector"`
	Status      string    `json:"status,omitempty"`
	Views       int64     `json:"views"`
	Downloads   int64     `json:"downloads"`
	Likes       int64     `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`

	// Moderation-only detail, admin responses only
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// toAssetResponse builds the public view of an asset. File URLs beyond
// the preview are withheld; they are only reachable through the
// download gate. Status and the rejection reason stay empty unless the
// caller opts into the moderation view.
func toAssetResponse(a *model.Asset, moderation bool) assetResponse {
	resp := assetResponse{
		ID:          a.ID,
		UploaderID:  a.UploaderID,
		Title:       a.Title,
		Category:    a.Category,
		Description: a.Description,
		AIPrompt:    a.AIPrompt,
		PreviewURL:  a.URLPNG,
		HasProject:  a.URLPLP != nil && *a.URLPLP != "",
		HasVector:   a.URLXML != nil && *a.URLXML != "",
		Views:       a.Views,
		Downloads:   a.Downloads,
		Likes:       a.Likes,
		CreatedAt:   a.CreatedAt,
	}
	if moderation {
		resp.Status = a.Status
		resp.RejectionReason = a.RejectionReason
	}
	return resp
}

func toAssetResponses(assets []*model.Asset, moderation bool) []assetResponse {
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a, moderation))
	}
	return out
}

type messageResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Content    *string   `json:"content,omitempty"`
	StickerURL *string   `json:"sticker_url,omitempty"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`

	SenderName     string `json:"sender_name"`
	SenderAvatar   string `json:"sender_avatar"`
	SenderRole     string `json:"sender_role"`
	SenderVerified bool   `json:"sender_verified"`
}

func toMessageResponse(m *model.Message) messageResponse {
	return messageResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Content:        m.Content,
		StickerURL:     m.StickerURL,
		Kind:           m.Kind,
		CreatedAt:      m.CreatedAt,
		SenderName:     m.SenderName,
		SenderAvatar:   m.SenderAvatar,
		SenderRole:     m.SenderRole,
		SenderVerified: m.SenderVerified,
	}
}

type commentResponse struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	SenderName     string `json:"sender_name"`
	SenderAvatar   string `json:"sender_avatar"`
	SenderRole     string `json:"sender_role"`
	SenderVerified bool   `json:"sender_verified"`
}

func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:             c.ID,
		AssetID:        c.AssetID,
		UserID:         c.UserID,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
		SenderName:     c.SenderName,
		SenderAvatar:   c.SenderAvatar,
		SenderRole:     c.SenderRole,
		SenderVerified: c.SenderVerified,
	}
}
