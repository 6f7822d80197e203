package service

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
)

var (
	ErrMessageEmpty   = errors.New("message is empty")
	ErrLinkNotAllowed = errors.New("links are not allowed in chat")
	ErrUserBlocked    = errors.New("user is blocked from the community")
)

// chatDenylist is the fixed word filter. Matching is case-insensitive
// substring over the message body.
var chatDenylist = []string{"badword", "abuse", "hate", "scam", "stupid", "idiot", "fool"}

// linkPattern catches http(s) URLs, www-prefixed hosts and bare
// domain.tld/ paths.
var linkPattern = regexp.MustCompile(`(?i)(https?://\S+)|(www\.\S+)|([a-zA-Z0-9]+\.[a-z]{2,}/)`)

const chatHistoryLimit = 50

// Publisher fans a chat event out to realtime subscribers.
type Publisher interface {
	Publish(event string, payload any)
}

// ChatService owns the community feed. The link and denylist filters run
// here, on the write path, before anything is stored or broadcast, so a
// modified client cannot skip them.
type ChatService struct {
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	abuseRepo   repository.AbuseLogRepository
	publisher   Publisher
}

func NewChatService(
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	abuseRepo repository.AbuseLogRepository,
	publisher Publisher,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		abuseRepo:   abuseRepo,
		publisher:   publisher,
	}
}

// Messages returns the latest history in chronological order.
func (s *ChatService) Messages() ([]*model.Message, error) {
	return s.messageRepo.Latest(chatHistoryLimit)
}

// SendText appends a text message after running the moderation filters.
// A denylist hit blocks the sender and records one audit row; the
// message itself is never stored.
func (s *ChatService) SendText(userID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender profile: %w", err)
	}
	if profile.IsBlocked() {
		return nil, ErrUserBlocked
	}

	if linkPattern.MatchString(content) {
		return nil, ErrLinkNotAllowed
	}

	if word := detectDenylisted(content); word != "" {
		err = s.blockSender(userID, content, word)
		if err != nil {
			return nil, err
		}
		return nil, ErrUserBlocked
	}

	return s.append(userID, &model.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   &content,
		Kind:      model.MessageText,
		CreatedAt: time.Now(),
	})
}

// SendSticker appends a sticker message. Stickers carry no text, so the
// content filters do not apply; the blocked check still does.
func (s *ChatService) SendSticker(userID, stickerURL string) (*model.Message, error) {
	if strings.TrimSpace(stickerURL) == "" {
		return nil, ErrMessageEmpty
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender profile: %w", err)
	}
	if profile.IsBlocked() {
		return nil, ErrUserBlocked
	}

	return s.append(userID, &model.Message{
		ID:         uuid.New().String(),
		UserID:     userID,
		StickerURL: &stickerURL,
		Kind:       model.MessageSticker,
		CreatedAt:  time.Now(),
	})
}

func (s *ChatService) append(userID string, message *model.Message) (*model.Message, error) {
	err := s.messageRepo.Create(message)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	// Re-read with the sender profile joined so subscribers get the same
	// shape the history endpoint serves.
	stored, err := s.messageRepo.ByID(message.ID)
	if err != nil {
		slog.Warn("failed to reload message for broadcast", "error", err, "message_id", message.ID)
		stored = message
	}

	if s.publisher != nil {
		s.publisher.Publish("message", stored)
	}

	return stored, nil
}

// blockSender flips the sender to blocked and writes exactly one audit
// row for the offending attempt.
func (s *ChatService) blockSender(userID, content, word string) error {
	err := s.profileRepo.UpdateStatus(userID, model.StatusBlocked)
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}

	err = s.abuseRepo.Create(&model.AbuseLog{
		ID:             uuid.New().String(),
		UserID:         userID,
		MessageAttempt: content,
		DetectedWord:   word,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record abuse log: %w", err)
	}

	slog.Info("user auto-blocked by chat filter", "user_id", userID, "word", word)
	return nil
}

func detectDenylisted(content string) string {
	lower := strings.ToLower(content)
	for _, word := range chatDenylist {
		if strings.Contains(lower, word) {
			return word
		}
	}
	return ""
}
