package repository

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/db"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	// The in-memory database lives per connection
	database.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func seedUser(t *testing.T, database *sqlx.DB, id string) {
	t.Helper()

	users := NewUserRepository(database)
	require.NoError(t, users.Create(&model.User{
		ID:        id,
		Email:     id + "@example.com",
		CreatedAt: time.Now().UTC(),
	}))

	profiles := NewProfileRepository(database)
	require.NoError(t, profiles.Create(&model.Profile{
		UserID:      id,
		DisplayName: id,
		Role:        model.RoleUser,
		Status:      model.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}))
}

func seedAsset(t *testing.T, database *sqlx.DB, id, title, category, status string, createdAt time.Time) {
	t.Helper()

	assets := NewAssetRepository(database)
	require.NoError(t, assets.Create(&model.Asset{
		ID:        id,
		Title:     title,
		Category:  category,
		URLPNG:    "https://files.test/" + id + ".png",
		Status:    status,
		CreatedAt: createdAt,
	}))
}

func TestUserRepository(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	_, err := users.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	seedUser(t, database, "u1")

	user, err := users.ByEmail("u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.False(t, user.IsVerified())

	now := time.Now().UTC()
	require.NoError(t, users.SetEmailVerified("u1", now))

	user, err = users.ByID("u1")
	require.NoError(t, err)
	assert.True(t, user.IsVerified())
}

func TestApprovedCatalogFiltering(t *testing.T) {
	database := newTestDB(t)
	assets := NewAssetRepository(database)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seedAsset(t, database, "a1", "Dragon Logo", "Animals", model.AssetApproved, base.Add(1*time.Hour))
	seedAsset(t, database, "a2", "Phoenix Logo", "Animals", model.AssetApproved, base.Add(2*time.Hour))
	seedAsset(t, database, "a3", "Skyline", "City", model.AssetApproved, base.Add(3*time.Hour))
	seedAsset(t, database, "p1", "Pending Dragon", "Animals", model.AssetPending, base.Add(4*time.Hour))
	seedAsset(t, database, "r1", "Rejected Dragon", "Animals", model.AssetRejected, base.Add(5*time.Hour))

	all, err := assets.Approved("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first
	assert.Equal(t, "a3", all[0].ID)
	assert.Equal(t, "a1", all[2].ID)

	byCategory, err := assets.Approved("", "Animals")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySearch, err := assets.Approved("dragon", "")
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "a1", bySearch[0].ID)

	both, err := assets.Approved("phoenix", "Animals")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "a2", both[0].ID)
}

func TestAssetStatusTransitions(t *testing.T) {
	database := newTestDB(t)
	assets := NewAssetRepository(database)

	seedAsset(t, database, "42", "Wolf", "Animals", model.AssetPending, time.Now().UTC())

	pending, err := assets.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, assets.UpdateStatus("42", model.AssetApproved, nil))

	asset, err := assets.ByID("42")
	require.NoError(t, err)
	assert.Equal(t, model.AssetApproved, asset.Status)
	assert.Nil(t, asset.RejectionReason)

	approved, err := assets.Approved("", "")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "42", approved[0].ID)

	reason := "too similar"
	require.NoError(t, assets.UpdateStatus("42", model.AssetRejected, &reason))
	asset, err = assets.ByID("42")
	require.NoError(t, err)
	require.NotNil(t, asset.RejectionReason)
	assert.Equal(t, "too similar", *asset.RejectionReason)
}

func TestAssetCounters(t *testing.T) {
	database := newTestDB(t)
	assets := NewAssetRepository(database)

	seedAsset(t, database, "a1", "Wolf", "Animals", model.AssetApproved, time.Now().UTC())

	require.NoError(t, assets.IncrementViews("a1"))
	require.NoError(t, assets.IncrementViews("a1"))
	require.NoError(t, assets.IncrementDownloads("a1"))
	require.NoError(t, assets.AdjustLikes("a1", 1))
	require.NoError(t, assets.AdjustLikes("a1", -1))

	asset, err := assets.ByID("a1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), asset.Views)
	assert.Equal(t, int64(1), asset.Downloads)
	assert.Equal(t, int64(0), asset.Likes)
}

func TestSettingUpsertRoundTrip(t *testing.T) {
	database := newTestDB(t)
	settings := NewSettingRepository(database)

	_, err := settings.Get("site_name")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, settings.Upsert("site_name", "LogoForge"))
	require.NoError(t, settings.Upsert("announcement_text", "**hello** _world_"))

	value, err := settings.Get("announcement_text")
	require.NoError(t, err)
	assert.Equal(t, "**hello** _world_", value)

	// Upsert overwrites in place
	require.NoError(t, settings.Upsert("site_name", "PixelMarket"))
	value, err = settings.Get("site_name")
	require.NoError(t, err)
	assert.Equal(t, "PixelMarket", value)

	all, err := settings.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGrantActiveAndExpired(t *testing.T) {
	database := newTestDB(t)
	grants := NewGrantRepository(database)
	seedUser(t, database, "u1")

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	grant, err := grants.ActiveByUser("u1", now)
	require.NoError(t, err)
	assert.Nil(t, grant)

	require.NoError(t, grants.Create(&model.DownloadGrant{
		ID: "g-old", UserID: "u1", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, grants.Create(&model.DownloadGrant{
		ID: "g-new", UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	grant, err = grants.ActiveByUser("u1", now)
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, "g-new", grant.ID)

	// Another user never sees it
	grant, err = grants.ActiveByUser("u2", now)
	require.NoError(t, err)
	assert.Nil(t, grant)

	require.NoError(t, grants.DeleteExpired(now))
	grant, err = grants.ActiveByUser("u1", now)
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, "g-new", grant.ID)
}

func TestMessageLatestOrderAndJoin(t *testing.T) {
	database := newTestDB(t)
	messages := NewMessageRepository(database)
	seedUser(t, database, "u1")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		content := string(rune('a' + i))
		require.NoError(t, messages.Create(&model.Message{
			ID:        content,
			UserID:    "u1",
			Content:   &content,
			Kind:      model.MessageText,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := messages.Latest(3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	// Most recent three, oldest first
	assert.Equal(t, "c", latest[0].ID)
	assert.Equal(t, "e", latest[2].ID)
	assert.Equal(t, "u1", latest[0].SenderName)
}

func TestFollowAndLike(t *testing.T) {
	database := newTestDB(t)
	follows := NewFollowRepository(database)
	likes := NewLikeRepository(database)
	seedUser(t, database, "u1")
	seedUser(t, database, "u2")
	seedAsset(t, database, "a1", "Wolf", "Animals", model.AssetApproved, time.Now().UTC())

	exists, err := follows.Exists("u1", "u2")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, follows.Create(&model.Follow{
		FollowerID: "u1", FollowingID: "u2", CreatedAt: time.Now().UTC(),
	}))

	exists, err = follows.Exists("u1", "u2")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := follows.CountFollowers("u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, follows.Delete("u1", "u2"))
	count, err = follows.CountFollowers("u2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, likes.Create(&model.Like{
		AssetID: "a1", UserID: "u1", CreatedAt: time.Now().UTC(),
	}))
	liked, err := likes.Exists("a1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, likes.Delete("a1", "u1"))
	liked, err = likes.Exists("a1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestAbuseLogList(t *testing.T) {
	database := newTestDB(t)
	abuse := NewAbuseLogRepository(database)
	seedUser(t, database, "u1")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, abuse.Create(&model.AbuseLog{
			ID:             string(rune('a' + i)),
			UserID:         "u1",
			MessageAttempt: "bad message",
			DetectedWord:   "badword",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, err := abuse.List(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first
	assert.Equal(t, "c", logs[0].ID)
}
