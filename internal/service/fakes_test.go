package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
)

// In-memory fakes for the repository and storage interfaces. Mutexes
// matter: delivery side effects run on goroutines.

type fakeAssetRepo struct {
	mu     sync.Mutex
	assets map[string]*model.Asset
}

func newFakeAssetRepo(assets ...*model.Asset) *fakeAssetRepo {
	r := &fakeAssetRepo{assets: make(map[string]*model.Asset)}
	for _, a := range assets {
		r.assets[a.ID] = a
	}
	return r
}

func (r *fakeAssetRepo) Create(asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.ID] = asset
	return nil
}

func (r *fakeAssetRepo) ByID(id string) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, repository.ErrAssetNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAssetRepo) Approved(search, category string) ([]*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Asset
	for _, a := range r.assets {
		if a.Status == model.AssetApproved {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) ByUploader(uploaderID, status string) ([]*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Asset
	for _, a := range r.assets {
		if a.UploaderID != nil && *a.UploaderID == uploaderID && a.Status == status {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) Pending() ([]*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Asset
	for _, a := range r.assets {
		if a.Status == model.AssetPending {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) UpdateStatus(id, status string, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return repository.ErrAssetNotFound
	}
	a.Status = status
	a.RejectionReason = reason
	return nil
}

func (r *fakeAssetRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, id)
	return nil
}

func (r *fakeAssetRepo) IncrementViews(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.assets[id]; ok {
		a.Views++
	}
	return nil
}

func (r *fakeAssetRepo) IncrementDownloads(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.assets[id]; ok {
		a.Downloads++
	}
	return nil
}

func (r *fakeAssetRepo) AdjustLikes(id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.assets[id]; ok {
		a.Likes += delta
	}
	return nil
}

func (r *fakeAssetRepo) downloads(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.assets[id]; ok {
		return a.Downloads
	}
	return 0
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) SetEmailVerified(id string, verifiedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.EmailVerifiedAt = &verifiedAt
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) ByUserID(userID string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) UpdateStatus(userID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProfileRepo) UpdateInfo(userID, displayName, bio string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.DisplayName = displayName
	p.Bio = bio
	return nil
}

func (r *fakeProfileRepo) List() ([]*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Profile
	for _, p := range r.profiles {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeProfileRepo) status(userID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		return p.Status
	}
	return ""
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
}

func (r *fakeMessageRepo) Create(message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ByID(id string) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrMessageNotFound
}

func (r *fakeMessageRepo) Latest(limit int) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := 0
	if len(r.messages) > limit {
		start = len(r.messages) - limit
	}
	return append([]*model.Message{}, r.messages[start:]...), nil
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type fakeAbuseRepo struct {
	mu   sync.Mutex
	logs []*model.AbuseLog
}

func (r *fakeAbuseRepo) Create(log *model.AbuseLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeAbuseRepo) List(limit int) ([]*model.AbuseLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.AbuseLog{}, r.logs...), nil
}

func (r *fakeAbuseRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

type fakeDownloadRepo struct {
	mu   sync.Mutex
	rows []*model.Download
}

func (r *fakeDownloadRepo) Create(download *model.Download) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *download
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *fakeDownloadRepo) ByUser(userID string, limit int) ([]*model.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Download
	for _, d := range r.rows {
		if d.UserID == userID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDownloadRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeGrantRepo struct {
	mu     sync.Mutex
	grants []*model.DownloadGrant
}

func (r *fakeGrantRepo) Create(grant *model.DownloadGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *grant
	r.grants = append(r.grants, &copied)
	return nil
}

func (r *fakeGrantRepo) ActiveByUser(userID string, now time.Time) (*model.DownloadGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grants {
		if g.UserID == userID && now.Before(g.ExpiresAt) {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeGrantRepo) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.grants[:0]
	for _, g := range r.grants {
		if now.Before(g.ExpiresAt) {
			kept = append(kept, g)
		}
	}
	r.grants = kept
	return nil
}

type fakeSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettingRepo(values map[string]string) *fakeSettingRepo {
	if values == nil {
		values = make(map[string]string)
	}
	return &fakeSettingRepo{values: values}
}

func (r *fakeSettingRepo) All() (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *fakeSettingRepo) Get(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return v, nil
}

func (r *fakeSettingRepo) Upsert(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

type followKey struct{ follower, following string }

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[followKey]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[followKey]bool)}
}

func (r *fakeFollowRepo) Create(follow *model.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.follows[followKey{follow.FollowerID, follow.FollowingID}] = true
	return nil
}

func (r *fakeFollowRepo) Delete(followerID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.follows, followKey{followerID, followingID})
	return nil
}

func (r *fakeFollowRepo) Exists(followerID, followingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.follows[followKey{followerID, followingID}], nil
}

func (r *fakeFollowRepo) CountFollowers(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.follows {
		if k.following == userID {
			n++
		}
	}
	return n, nil
}

type likeKey struct{ asset, user string }

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]bool)}
}

func (r *fakeLikeRepo) Create(like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[likeKey{like.AssetID, like.UserID}] = true
	return nil
}

func (r *fakeLikeRepo) Delete(assetID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, likeKey{assetID, userID})
	return nil
}

func (r *fakeLikeRepo) Exists(assetID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[likeKey{assetID, userID}], nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment)}
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) ByID(id string) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) ByAsset(assetID string) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Comment
	for _, c := range r.comments {
		if c.AssetID == assetID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

type fakeStorage struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, path string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[path] = data
	return nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, path)
	return nil
}

func (s *fakeStorage) PublicURL(path string) string {
	return "https://files.test/" + path
}

func (s *fakeStorage) DownloadURL(ctx context.Context, rawURL string) (string, error) {
	if key, ok := s.Key(rawURL); ok {
		return "https://files.test/signed/" + key, nil
	}
	return rawURL, nil
}

func (s *fakeStorage) Key(rawURL string) (string, bool) {
	const prefix = "https://files.test/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):], true
	}
	return "", false
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) Publish(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
