package service

import (
	"testing"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	svc    *ProfileService
	assets *fakeAssetRepo
	likes  *fakeLikeRepo
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	creator := "creator"
	assets := newFakeAssetRepo(
		&model.Asset{ID: "pub", UploaderID: &creator, Status: model.AssetApproved},
		&model.Asset{ID: "wip", UploaderID: &creator, Status: model.AssetPending},
	)
	profiles := newFakeProfileRepo(
		&model.Profile{UserID: "creator", DisplayName: "carol", Status: model.StatusActive},
		&model.Profile{UserID: "viewer", DisplayName: "vic", Status: model.StatusActive},
	)
	f := &profileFixture{
		assets: assets,
		likes:  newFakeLikeRepo(),
	}
	f.svc = NewProfileService(profiles, assets, newFakeFollowRepo(), f.likes, newFakeCommentRepo())
	return f
}

func TestChannelShowsApprovedUploadsOnly(t *testing.T) {
	f := newProfileFixture(t)

	channel, err := f.svc.Channel("creator", "viewer")
	require.NoError(t, err)
	require.Len(t, channel.Uploads, 1)
	assert.Equal(t, "pub", channel.Uploads[0].ID)
	assert.Equal(t, int64(0), channel.Followers)
	assert.False(t, channel.Following)
}

func TestChannelUnknownUser(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.svc.Channel("ghost", "")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFollowIsIdempotentAndCounted(t *testing.T) {
	f := newProfileFixture(t)

	require.NoError(t, f.svc.Follow("viewer", "creator"))
	require.NoError(t, f.svc.Follow("viewer", "creator"))

	channel, err := f.svc.Channel("creator", "viewer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), channel.Followers)
	assert.True(t, channel.Following)

	require.NoError(t, f.svc.Unfollow("viewer", "creator"))
	channel, err = f.svc.Channel("creator", "viewer")
	require.NoError(t, err)
	assert.Equal(t, int64(0), channel.Followers)
}

func TestUpdateInfoRequiresDisplayName(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.UpdateInfo("viewer", "   ", "a bio")
	assert.ErrorIs(t, err, ErrDisplayNameRequired)
}

func TestFollowYourself(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.Follow("creator", "creator")
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestLikeKeepsCounterInSync(t *testing.T) {
	f := newProfileFixture(t)

	require.NoError(t, f.svc.Like("viewer", "pub"))
	require.NoError(t, f.svc.Like("viewer", "pub")) // no double count

	asset, err := f.assets.ByID("pub")
	require.NoError(t, err)
	assert.Equal(t, int64(1), asset.Likes)

	require.NoError(t, f.svc.Unlike("viewer", "pub"))
	require.NoError(t, f.svc.Unlike("viewer", "pub")) // no underflow

	asset, err = f.assets.ByID("pub")
	require.NoError(t, err)
	assert.Equal(t, int64(0), asset.Likes)
}

func TestCommentLifecycle(t *testing.T) {
	f := newProfileFixture(t)

	comment, err := f.svc.AddComment("viewer", "pub", "  great logo!  ")
	require.NoError(t, err)
	assert.Equal(t, "great logo!", comment.Content)

	_, err = f.svc.AddComment("viewer", "pub", "   ")
	assert.ErrorIs(t, err, ErrCommentEmpty)

	_, err = f.svc.AddComment("viewer", "ghost", "hello")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	// A stranger cannot delete someone else's comment
	err = f.svc.DeleteComment(&model.Profile{UserID: "stranger"}, comment.ID)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	// The author can
	err = f.svc.DeleteComment(&model.Profile{UserID: "viewer"}, comment.ID)
	require.NoError(t, err)

	// Admins can delete anything
	comment2, err := f.svc.AddComment("viewer", "pub", "again")
	require.NoError(t, err)
	err = f.svc.DeleteComment(&model.Profile{UserID: "admin", Role: model.RoleAdmin}, comment2.ID)
	require.NoError(t, err)
}
