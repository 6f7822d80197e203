package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	ByID(id string) (*model.Comment, error)
	ByAsset(assetID string) ([]*model.Comment, error)
	Delete(id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (id, asset_id, user_id, content, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, comment.ID, comment.AssetID, comment.UserID, comment.Content, comment.CreatedAt)
	return err
}

func (r *commentRepository) ByID(id string) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `SELECT c.id, c.asset_id, c.user_id, c.content, c.created_at,
	              p.display_name AS sender_name, p.avatar_url AS sender_avatar,
	              p.role AS sender_role, p.is_verified AS sender_verified
	          FROM comments c JOIN profiles p ON p.user_id = c.user_id
	          WHERE c.id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

func (r *commentRepository) ByAsset(assetID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	query := `SELECT c.id, c.asset_id, c.user_id, c.content, c.created_at,
	              p.display_name AS sender_name, p.avatar_url AS sender_avatar,
	              p.role AS sender_role, p.is_verified AS sender_verified
	          FROM comments c JOIN profiles p ON p.user_id = c.user_id
	          WHERE c.asset_id = $1 ORDER BY c.created_at DESC`

	err := r.db.Select(&comments, query, assetID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Delete(id string) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

type FollowRepository interface {
	Create(follow *model.Follow) error
	Delete(followerID, followingID string) error
	Exists(followerID, followingID string) (bool, error)
	CountFollowers(userID string) (int64, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *followRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (follower_id, following_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, follow.FollowerID, follow.FollowingID, follow.CreatedAt)
	return err
}

func (r *followRepository) Delete(followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	_, err := r.db.Exec(query, followerID, followingID)
	return err
}

func (r *followRepository) Exists(followerID, followingID string) (bool, error) {
	var count int64
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND following_id = $2`

	err := r.db.Get(&count, query, followerID, followingID)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *followRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM follows WHERE following_id = $1`

	err := r.db.Get(&count, query, userID)
	return count, err
}

type LikeRepository interface {
	Create(like *model.Like) error
	Delete(assetID, userID string) error
	Exists(assetID, userID string) (bool, error)
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(like *model.Like) error {
	query := `INSERT INTO likes (asset_id, user_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, like.AssetID, like.UserID, like.CreatedAt)
	return err
}

func (r *likeRepository) Delete(assetID, userID string) error {
	query := `DELETE FROM likes WHERE asset_id = $1 AND user_id = $2`
	_, err := r.db.Exec(query, assetID, userID)
	return err
}

func (r *likeRepository) Exists(assetID, userID string) (bool, error) {
	var count int64
	query := `SELECT COUNT(*) FROM likes WHERE asset_id = $1 AND user_id = $2`

	err := r.db.Get(&count, query, assetID, userID)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
