package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

var (
	ErrMessageNotFound = errors.New("message not found")
)

const messageColumns = `m.id, m.user_id, m.content, m.sticker_url, m.kind, m.created_at,
	p.display_name AS sender_name, p.avatar_url AS sender_avatar,
	p.role AS sender_role, p.is_verified AS sender_verified`

type MessageRepository interface {
	Create(message *model.Message) error
	ByID(id string) (*model.Message, error)
	Latest(limit int) ([]*model.Message, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	query := `INSERT INTO messages (id, user_id, content, sticker_url, kind, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		message.ID,
		message.UserID,
		message.Content,
		message.StickerURL,
		message.Kind,
		message.CreatedAt,
	)

	return err
}

func (r *messageRepository) ByID(id string) (*model.Message, error) {
	message := &model.Message{}
	query := `SELECT ` + messageColumns + `
	          FROM messages m JOIN profiles p ON p.user_id = m.user_id
	          WHERE m.id = $1`

	err := r.db.Get(message, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}

	return message, err
}

// Latest returns the most recent messages in chronological order.
func (r *messageRepository) Latest(limit int) ([]*model.Message, error) {
	var messages []*model.Message
	query := `SELECT * FROM (
	              SELECT ` + messageColumns + `
	              FROM messages m JOIN profiles p ON p.user_id = m.user_id
	              ORDER BY m.created_at DESC LIMIT $1
	          ) latest ORDER BY created_at ASC`

	err := r.db.Select(&messages, query, limit)
	if err != nil {
		return nil, err
	}

	return messages, nil
}
