package model

import (
	"strconv"
	"strings"
)

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// Monetization modes for restricted downloads.
const (
	MonetizationNone      = "none"
	MonetizationShortlink = "shortlink"
	MonetizationShare     = "share"
)

// SiteConfig is the typed view over the settings table. Values are stored
// as strings; parsing happens once here with explicit defaults, so a
// missing or garbage value can never break a request path.
type SiteConfig struct {
	SiteName         string
	MaintenanceMode  bool
	MonetizationMode string
	ShortlinkURL     string
	DownloadWait     int // seconds

	AnnouncementEnabled bool
	AnnouncementText    string
	PopupEnabled        bool
	TelegramLink        string
	YoutubeLink         string
	CommunityRules      string
	AdSnippet           string

	FooterAbout     string
	FooterCopyright string
	FooterLinks     [3]FooterLink
}

type FooterLink struct {
	Label string
	URL   string
}

// DefaultSiteConfig returns the documented client-side defaults.
// An unset monetization mode means "share", not "none": the gate must
// never fail open because settings have not been written yet.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		SiteName:         "LogoForge",
		MonetizationMode: MonetizationShare,
		DownloadWait:     10,
		FooterAbout:      "The best place for design assets.",
		FooterCopyright:  "© 2024 LogoForge.",
		FooterLinks: [3]FooterLink{
			{Label: "Privacy", URL: "#"},
			{Label: "Terms", URL: "#"},
			{Label: "Contact", URL: "#"},
		},
	}
}

// SiteConfigFromMap builds a typed config from raw settings rows.
// Unknown keys are ignored; unparseable values keep their defaults.
func SiteConfigFromMap(raw map[string]string) SiteConfig {
	c := DefaultSiteConfig()

	if v, ok := raw["site_name"]; ok && v != "" {
		c.SiteName = v
	}
	c.MaintenanceMode = settingBool(raw, "maintenance_mode", c.MaintenanceMode)
	if v, ok := raw["monetization_mode"]; ok {
		switch v {
		case MonetizationNone, MonetizationShortlink, MonetizationShare:
			c.MonetizationMode = v
		}
	}
	if v, ok := raw["shortlink_url"]; ok {
		c.ShortlinkURL = v
	}
	if v, ok := raw["download_wait_seconds"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n >= 0 {
			c.DownloadWait = n
		}
	}

	c.AnnouncementEnabled = settingBool(raw, "announcement_enabled", c.AnnouncementEnabled)
	if v, ok := raw["announcement_text"]; ok {
		c.AnnouncementText = v
	}
	c.PopupEnabled = settingBool(raw, "popup_enabled", c.PopupEnabled)
	if v, ok := raw["telegram_link"]; ok {
		c.TelegramLink = v
	}
	if v, ok := raw["youtube_link"]; ok {
		c.YoutubeLink = v
	}
	if v, ok := raw["community_rules"]; ok {
		c.CommunityRules = v
	}
	if v, ok := raw["ad_snippet"]; ok {
		c.AdSnippet = v
	}

	if v, ok := raw["footer_about"]; ok {
		c.FooterAbout = v
	}
	if v, ok := raw["footer_copyright"]; ok {
		c.FooterCopyright = v
	}
	for i := range c.FooterLinks {
		n := strconv.Itoa(i + 1)
		if v, ok := raw["footer_link_"+n+"_label"]; ok {
			c.FooterLinks[i].Label = v
		}
		if v, ok := raw["footer_link_"+n+"_url"]; ok {
			c.FooterLinks[i].URL = v
		}
	}

	return c
}

// settingBool parses the "true"/"false" strings the admin UI writes.
// Anything else keeps the default.
func settingBool(raw map[string]string, key string, def bool) bool {
	v, ok := raw[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
