package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
)

type SettingRepository interface {
	All() (map[string]string, error)
	Get(key string) (string, error)
	Upsert(key, value string) error
}

type settingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) *settingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) All() (map[string]string, error) {
	var rows []model.Setting
	query := `SELECT * FROM settings`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	return settings, nil
}

func (r *settingRepository) Get(key string) (string, error) {
	var setting model.Setting
	query := `SELECT * FROM settings WHERE key = $1`

	err := r.db.Get(&setting, query, key)
	if err == sql.ErrNoRows {
		return "", ErrSettingNotFound
	}

	return setting.Value, err
}

// Upsert writes the value verbatim. Settings are string-only in both
// directions; typing happens in model.SiteConfigFromMap.
func (r *settingRepository) Upsert(key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := r.db.Exec(query, key, value)
	return err
}
