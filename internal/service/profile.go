package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentEmpty        = errors.New("comment is empty")
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrNotCommentAuthor    = errors.New("not allowed to delete this comment")
)

// Channel is a creator page: the profile, its published work and the
// follower count in one view.
type Channel struct {
	Profile   *model.Profile
	Uploads   []*model.Asset
	Followers int64
	Following bool
}

// ProfileService covers creator pages and the social actions hanging
// off them: follow, like, comment.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	assetRepo   repository.AssetRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	assetRepo repository.AssetRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		assetRepo:   assetRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// Channel assembles a creator page. viewerID may be empty; it only
// affects the Following flag. Uploads are approved work only, so a
// channel never leaks pending or rejected submissions.
func (s *ProfileService) Channel(userID, viewerID string) (*Channel, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	uploads, err := s.assetRepo.ByUploader(userID, model.AssetApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	followers, err := s.followRepo.CountFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	following := false
	if viewerID != "" && viewerID != userID {
		following, err = s.followRepo.Exists(viewerID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow: %w", err)
		}
	}

	return &Channel{
		Profile:   profile,
		Uploads:   uploads,
		Followers: followers,
		Following: following,
	}, nil
}

// MyUploads lists the signed-in user's own submissions in one status,
// rejected and pending included.
func (s *ProfileService) MyUploads(userID, status string) ([]*model.Asset, error) {
	return s.assetRepo.ByUploader(userID, status)
}

func (s *ProfileService) UpdateInfo(userID, displayName, bio string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ErrDisplayNameRequired
	}

	err := s.profileRepo.UpdateInfo(userID, displayName, strings.TrimSpace(bio))
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Follow is idempotent: following an already followed creator is a no-op.
func (s *ProfileService) Follow(followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	_, err := s.profileRepo.ByUserID(followingID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	exists, err := s.followRepo.Exists(followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to check follow: %w", err)
	}
	if exists {
		return nil
	}

	return s.followRepo.Create(&model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	})
}

func (s *ProfileService) Unfollow(followerID, followingID string) error {
	return s.followRepo.Delete(followerID, followingID)
}

// Like adds a like and bumps the asset counter. Liking twice is a no-op
// so the counter cannot drift from the like rows.
func (s *ProfileService) Like(userID, assetID string) error {
	_, err := s.assetRepo.ByID(assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return ErrAssetNotFound
		}
		return err
	}

	exists, err := s.likeRepo.Exists(assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to check like: %w", err)
	}
	if exists {
		return nil
	}

	err = s.likeRepo.Create(&model.Like{
		AssetID:   assetID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	err = s.assetRepo.AdjustLikes(assetID, 1)
	if err != nil {
		slog.Warn("failed to adjust like counter", "error", err, "asset_id", assetID)
	}
	return nil
}

func (s *ProfileService) Unlike(userID, assetID string) error {
	exists, err := s.likeRepo.Exists(assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to check like: %w", err)
	}
	if !exists {
		return nil
	}

	err = s.likeRepo.Delete(assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	err = s.assetRepo.AdjustLikes(assetID, -1)
	if err != nil {
		slog.Warn("failed to adjust like counter", "error", err, "asset_id", assetID)
	}
	return nil
}

func (s *ProfileService) Comments(assetID string) ([]*model.Comment, error) {
	return s.commentRepo.ByAsset(assetID)
}

func (s *ProfileService) AddComment(userID, assetID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}

	_, err := s.assetRepo.ByID(assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		AssetID:   assetID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	err = s.commentRepo.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.ByID(comment.ID)
}

// DeleteComment allows the author or an admin to remove a comment.
func (s *ProfileService) DeleteComment(actor *model.Profile, commentID string) error {
	comment, err := s.commentRepo.ByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrNotCommentAuthor
	}

	return s.commentRepo.Delete(commentID)
}
