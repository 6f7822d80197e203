package service

import (
	"context"
	"strings"
	"testing"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationFixture(t *testing.T) (*ModerationService, *fakeAssetRepo, *fakeProfileRepo, *fakeStorage) {
	t.Helper()

	assets := newFakeAssetRepo(&model.Asset{
		ID:     "42",
		Title:  "Phoenix Logo",
		URLPNG: "https://files.test/uploads/u1/phoenix.png",
		Status: model.AssetPending,
	})
	profiles := newFakeProfileRepo(
		&model.Profile{UserID: "u1", Status: model.StatusActive},
	)
	store := newFakeStorage()
	svc := NewModerationService(assets, profiles, &fakeAbuseRepo{}, store)
	return svc, assets, profiles, store
}

func TestApprovePendingAsset(t *testing.T) {
	svc, assets, _, _ := newModerationFixture(t)

	asset, err := svc.Approve("42")
	require.NoError(t, err)
	assert.Equal(t, model.AssetApproved, asset.Status)

	// Approved assets show up in the catalog
	approved, err := assets.Approved("", "")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "42", approved[0].ID)
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.Approve("42")
	require.NoError(t, err)

	asset, err := svc.Approve("42")
	require.NoError(t, err)
	assert.Equal(t, model.AssetApproved, asset.Status)
}

func TestApproveRejectedAssetFails(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.Reject("42", "low quality")
	require.NoError(t, err)

	_, err = svc.Approve("42")
	assert.ErrorIs(t, err, ErrAlreadyModerated)
}

func TestRejectRecordsReason(t *testing.T) {
	svc, assets, _, _ := newModerationFixture(t)

	asset, err := svc.Reject("42", "duplicate of an existing logo")
	require.NoError(t, err)
	assert.Equal(t, model.AssetRejected, asset.Status)
	require.NotNil(t, asset.RejectionReason)
	assert.Equal(t, "duplicate of an existing logo", *asset.RejectionReason)

	// Rejected assets never reach the catalog
	approved, err := assets.Approved("", "")
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestRejectRequiresPending(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.Approve("42")
	require.NoError(t, err)

	_, err = svc.Reject("42", "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyModerated)
}

func TestDeleteRemovesRowAndStoredObjects(t *testing.T) {
	svc, assets, _, store := newModerationFixture(t)
	require.NoError(t, store.Save(context.Background(), "uploads/u1/phoenix.png", strings.NewReader("png")))

	err := svc.Delete(context.Background(), "42")
	require.NoError(t, err)

	_, err = assets.ByID("42")
	assert.Error(t, err)
	assert.Empty(t, store.saved)
}

func TestBlockAndUnblockUser(t *testing.T) {
	svc, _, profiles, _ := newModerationFixture(t)

	require.NoError(t, svc.BlockUser("u1"))
	assert.Equal(t, model.StatusBlocked, profiles.status("u1"))

	require.NoError(t, svc.UnblockUser("u1"))
	assert.Equal(t, model.StatusActive, profiles.status("u1"))
}

func TestBlockUnknownUser(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	err := svc.BlockUser("ghost")
	assert.Error(t, err)
}
