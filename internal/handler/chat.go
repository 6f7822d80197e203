package handler

import (
	"net/http"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/realtime"
	"github.com/logoforge/logoforge/internal/service"
)

type chatHandler struct {
	chatService *service.ChatService
	hub         *realtime.Hub
}

func NewChatHandler(chatService *service.ChatService, hub *realtime.Hub) *chatHandler {
	return &chatHandler{chatService: chatService, hub: hub}
}

// History serves the latest messages, oldest first.
func (h *chatHandler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.Messages()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	respondJSON(w, http.StatusOK, map[string]any{"messages": out})
}

// Send accepts a text or sticker message. New messages reach connected
// clients through the websocket broadcast; the response carries the
// stored message for the sender's own feed.
func (h *chatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content    string `json:"content"`
		StickerURL string `json:"sticker_url"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user := ctxkeys.User(r.Context())

	var (
		message *model.Message
		err     error
	)
	if req.StickerURL != "" {
		message, err = h.chatService.SendSticker(user.ID, req.StickerURL)
	} else {
		message, err = h.chatService.SendText(user.ID, req.Content)
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"message": toMessageResponse(message)})
}

// Socket upgrades to the realtime feed.
func (h *chatHandler) Socket(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
