package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/storage"
)

var (
	ErrLoginRequired       = errors.New("login required to download")
	ErrUnlockRequired      = errors.New("shortlink unlock required")
	ErrShareRequired       = errors.New("share required to download")
	ErrNotReady            = errors.New("download not ready yet")
	ErrAttemptNotFound     = errors.New("download attempt not found")
	ErrFileNotAvailable    = errors.New("file not available for this asset")
	ErrInvalidDownloadKind = errors.New("invalid download kind")
)

// Download attempt states. Begin walks an attempt through auth and
// entitlement synchronously, so only waiting attempts are ever parked in
// the registry; the remaining states exist for the attempt's lifecycle
// as reported to the client.
const (
	StateCheckingAuth        = "checking_auth"
	StateCheckingEntitlement = "checking_entitlement"
	StateWaiting             = "waiting"
	StateDelivering          = "delivering"
	StateDone                = "done"
	StateDenied              = "denied"
	StateAborted             = "aborted"
)

// attemptTTL bounds how long an unclaimed attempt survives in memory.
const attemptTTL = 15 * time.Minute

// Attempt is one pass through the download gate. Attempts are process
// local; a restart simply makes the client start over.
type Attempt struct {
	ID        string
	UserID    string
	AssetID   string
	Kind      string
	State     string
	ReadyAt   time.Time
	CreatedAt time.Time
}

// DownloadService gates access to asset files. The preview image only
// needs a signed-in user; restricted kinds additionally need the
// entitlement the active monetization mode demands, then a countdown
// before the file URL is released.
type DownloadService struct {
	assetRepo    repository.AssetRepository
	downloadRepo repository.DownloadRepository
	grantRepo    repository.GrantRepository
	settings     *SettingsService
	storage      storage.Storage

	grantTTL   time.Duration
	shareDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	attempts map[string]*Attempt

	shareMu    sync.Mutex
	shareFlags map[string]bool // per-user, reset on restart by design
}

func NewDownloadService(
	assetRepo repository.AssetRepository,
	downloadRepo repository.DownloadRepository,
	grantRepo repository.GrantRepository,
	settings *SettingsService,
	storage storage.Storage,
	grantTTL time.Duration,
	shareDelay time.Duration,
) *DownloadService {
	return &DownloadService{
		assetRepo:    assetRepo,
		downloadRepo: downloadRepo,
		grantRepo:    grantRepo,
		settings:     settings,
		storage:      storage,
		grantTTL:     grantTTL,
		shareDelay:   shareDelay,
		now:          time.Now,
		attempts:     make(map[string]*Attempt),
		shareFlags:   make(map[string]bool),
	}
}

// Begin opens a download attempt for the given asset file. It runs the
// auth and entitlement checks and, on success, parks the attempt in the
// waiting state with its countdown deadline.
func (s *DownloadService) Begin(userID, assetID, kind string) (*Attempt, error) {
	if userID == "" {
		return nil, ErrLoginRequired
	}

	switch kind {
	case model.KindPNG, model.KindPLP, model.KindXML:
	default:
		return nil, ErrInvalidDownloadKind
	}

	asset, err := s.assetRepo.ByID(assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if asset.Status != model.AssetApproved {
		return nil, ErrAssetNotFound
	}
	if asset.FileURL(kind) == "" {
		return nil, ErrFileNotAvailable
	}

	// A settings read failure falls back to defaults (share mode) so the
	// gate never fails open.
	cfg, err := s.settings.Snapshot()
	if err != nil {
		slog.Warn("settings unavailable, gating with defaults", "error", err)
	}

	if model.Restricted(kind) {
		err = s.checkEntitlement(userID, cfg)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	attempt := &Attempt{
		ID:        uuid.New().String(),
		UserID:    userID,
		AssetID:   assetID,
		Kind:      kind,
		State:     StateWaiting,
		ReadyAt:   now.Add(time.Duration(cfg.DownloadWait) * time.Second),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.attempts[attempt.ID] = attempt
	s.mu.Unlock()

	snapshot := *attempt
	return &snapshot, nil
}

func (s *DownloadService) checkEntitlement(userID string, cfg model.SiteConfig) error {
	switch cfg.MonetizationMode {
	case model.MonetizationNone:
		return nil

	case model.MonetizationShortlink:
		grant, err := s.grantRepo.ActiveByUser(userID, s.now())
		if err != nil {
			return fmt.Errorf("failed to check download grant: %w", err)
		}
		if grant == nil {
			return ErrUnlockRequired
		}
		return nil

	default:
		// share, and any unknown mode for safety
		if s.hasShareFlag(userID) {
			return nil
		}
		return ErrShareRequired
	}
}

// Claim finishes a waiting attempt. Before the deadline it reports the
// remaining wait; at or after the deadline it resolves the file URL,
// consumes the attempt and records the delivery in the background.
func (s *DownloadService) Claim(ctx context.Context, userID, attemptID string) (string, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	attempt, ok := s.attempts[attemptID]
	if !ok || attempt.UserID != userID {
		s.mu.Unlock()
		return "", 0, ErrAttemptNotFound
	}
	if now.Before(attempt.ReadyAt) {
		remaining := attempt.ReadyAt.Sub(now)
		s.mu.Unlock()
		return "", remaining, ErrNotReady
	}
	attempt.State = StateDelivering
	delete(s.attempts, attemptID)
	s.mu.Unlock()

	asset, err := s.assetRepo.ByID(attempt.AssetID)
	if err != nil {
		attempt.State = StateDenied
		if errors.Is(err, repository.ErrAssetNotFound) {
			return "", 0, ErrAssetNotFound
		}
		return "", 0, fmt.Errorf("failed to get asset: %w", err)
	}

	fileURL := asset.FileURL(attempt.Kind)
	if fileURL == "" {
		attempt.State = StateDenied
		return "", 0, ErrFileNotAvailable
	}

	url, err := s.storage.DownloadURL(ctx, fileURL)
	if err != nil {
		attempt.State = StateDenied
		return "", 0, fmt.Errorf("failed to resolve download URL: %w", err)
	}

	attempt.State = StateDone
	s.recordDelivery(attempt)

	return url, 0, nil
}

// Cancel aborts a waiting attempt. Cancelling an unknown or already
// consumed attempt is a no-op.
func (s *DownloadService) Cancel(userID, attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[attemptID]
	if !ok || attempt.UserID != userID {
		return
	}
	attempt.State = StateAborted
	delete(s.attempts, attemptID)
}

// Attempt returns a snapshot of a parked attempt for status polling.
// Callers get a copy; the registry's attempt is only ever touched under
// the mutex, so a poll can never race a concurrent claim.
func (s *DownloadService) Attempt(userID, attemptID string) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[attemptID]
	if !ok || attempt.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	snapshot := *attempt
	return &snapshot, nil
}

// Now reports the service clock, so countdowns rendered by callers
// agree with the deadlines the service enforces.
func (s *DownloadService) Now() time.Time {
	return s.now()
}

// CompleteShare flips the user's in-memory share flag after the fixed
// delay. There is no verification that a share happened; the delay is
// the whole mechanism. The flag does not survive a restart.
func (s *DownloadService) CompleteShare(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrLoginRequired
	}

	select {
	case <-time.After(s.shareDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	s.shareMu.Lock()
	s.shareFlags[userID] = true
	s.shareMu.Unlock()

	return nil
}

// IssueGrant records a shortlink completion as a time-boxed grant. The
// grant is user-bound, not asset-bound: one unlock opens all restricted
// downloads until it expires.
func (s *DownloadService) IssueGrant(userID string) (*model.DownloadGrant, error) {
	if userID == "" {
		return nil, ErrLoginRequired
	}

	now := s.now()
	grant := &model.DownloadGrant{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(s.grantTTL),
		CreatedAt: now,
	}

	err := s.grantRepo.Create(grant)
	if err != nil {
		return nil, fmt.Errorf("failed to create download grant: %w", err)
	}

	slog.Info("download grant issued", "user_id", userID, "expires_at", grant.ExpiresAt)
	return grant, nil
}

// History lists a user's recent deliveries.
func (s *DownloadService) History(userID string, limit int) ([]*model.Download, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.downloadRepo.ByUser(userID, limit)
}

// StartCleanup sweeps stale attempts and expired grant rows until the
// context is cancelled.
func (s *DownloadService) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.now()

			s.mu.Lock()
			s.pruneLocked(now)
			s.mu.Unlock()

			err := s.grantRepo.DeleteExpired(now)
			if err != nil {
				slog.Warn("failed to sweep expired grants", "error", err)
			}
		}
	}
}

func (s *DownloadService) hasShareFlag(userID string) bool {
	s.shareMu.Lock()
	defer s.shareMu.Unlock()
	return s.shareFlags[userID]
}

// recordDelivery bumps the counter and writes the log row off the
// request path. Failures are logged and never surface to the client.
func (s *DownloadService) recordDelivery(attempt *Attempt) {
	go func() {
		err := s.assetRepo.IncrementDownloads(attempt.AssetID)
		if err != nil {
			slog.Warn("failed to increment downloads", "error", err, "asset_id", attempt.AssetID)
		}

		err = s.downloadRepo.Create(&model.Download{
			ID:        uuid.New().String(),
			UserID:    attempt.UserID,
			AssetID:   attempt.AssetID,
			Kind:      attempt.Kind,
			CreatedAt: s.now(),
		})
		if err != nil {
			slog.Warn("failed to record download", "error", err, "asset_id", attempt.AssetID)
		}
	}()
}

func (s *DownloadService) pruneLocked(now time.Time) {
	for id, attempt := range s.attempts {
		if now.Sub(attempt.CreatedAt) > attemptTTL {
			delete(s.attempts, id)
		}
	}
}
