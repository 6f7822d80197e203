package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
)

var (
	ErrSettingKeyRequired = errors.New("setting key is required")
	ErrSettingInvalid     = errors.New("setting value is invalid")
)

// SettingsService owns the site configuration stored in the settings
// table. Persistence is string-only in both directions; the typed
// snapshot is derived on read with explicit defaults, so consumers never
// see a half-parsed value.
type SettingsService struct {
	settingRepo repository.SettingRepository
}

func NewSettingsService(settingRepo repository.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// Snapshot returns the typed site configuration. On a read failure the
// documented defaults are returned alongside the error so callers that
// must not fail ambiguously (the download gate) can proceed.
func (s *SettingsService) Snapshot() (model.SiteConfig, error) {
	raw, err := s.settingRepo.All()
	if err != nil {
		return model.DefaultSiteConfig(), fmt.Errorf("failed to load settings: %w", err)
	}
	return model.SiteConfigFromMap(raw), nil
}

// Raw returns the stored key/value rows verbatim, for the admin editor.
func (s *SettingsService) Raw() (map[string]string, error) {
	return s.settingRepo.All()
}

// Get returns the stored string for one key.
func (s *SettingsService) Get(key string) (string, error) {
	return s.settingRepo.Get(key)
}

// Set validates values for the enumerated keys and stores the string
// verbatim. Unknown keys are stored as-is; the typed snapshot ignores
// them.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrSettingKeyRequired
	}

	switch key {
	case "monetization_mode":
		switch value {
		case model.MonetizationNone, model.MonetizationShortlink, model.MonetizationShare:
		default:
			return fmt.Errorf("%w: monetization_mode must be none, shortlink or share", ErrSettingInvalid)
		}
	case "maintenance_mode", "announcement_enabled", "popup_enabled":
		_, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean", ErrSettingInvalid, key)
		}
	case "download_wait_seconds":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: download_wait_seconds must be a non-negative integer", ErrSettingInvalid)
		}
	}

	return s.settingRepo.Upsert(key, value)
}
