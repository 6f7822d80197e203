package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

type AbuseLogRepository interface {
	Create(log *model.AbuseLog) error
	List(limit int) ([]*model.AbuseLog, error)
}

type abuseLogRepository struct {
	db *sqlx.DB
}

func NewAbuseLogRepository(db *sqlx.DB) *abuseLogRepository {
	return &abuseLogRepository{db: db}
}

func (r *abuseLogRepository) Create(log *model.AbuseLog) error {
	query := `INSERT INTO abuse_logs (id, user_id, message_attempt, detected_word, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, log.ID, log.UserID, log.MessageAttempt, log.DetectedWord, log.CreatedAt)
	return err
}

func (r *abuseLogRepository) List(limit int) ([]*model.AbuseLog, error) {
	var logs []*model.AbuseLog
	query := `SELECT * FROM abuse_logs ORDER BY created_at DESC LIMIT $1`

	err := r.db.Select(&logs, query, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
