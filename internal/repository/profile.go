package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	UpdateStatus(userID, status string) error
	UpdateInfo(userID, displayName, bio string) error
	List() ([]*model.Profile, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	query := `INSERT INTO profiles (user_id, display_name, avatar_url, banner_url, bio, role, status, is_verified, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		profile.UserID,
		profile.DisplayName,
		profile.AvatarURL,
		profile.BannerURL,
		profile.Bio,
		profile.Role,
		profile.Status,
		profile.IsVerified,
		profile.CreatedAt,
	)

	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

func (r *profileRepository) UpdateStatus(userID, status string) error {
	query := `UPDATE profiles SET status = $1 WHERE user_id = $2`
	_, err := r.db.Exec(query, status, userID)
	return err
}

func (r *profileRepository) UpdateInfo(userID, displayName, bio string) error {
	query := `UPDATE profiles SET display_name = $1, bio = $2 WHERE user_id = $3`
	_, err := r.db.Exec(query, displayName, bio, userID)
	return err
}

func (r *profileRepository) List() ([]*model.Profile, error) {
	var profiles []*model.Profile
	query := `SELECT * FROM profiles ORDER BY created_at DESC`

	err := r.db.Select(&profiles, query)
	if err != nil {
		return nil, err
	}

	return profiles, nil
}
