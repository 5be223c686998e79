package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/domain/repository"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO messages (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.UserID, m.Title, m.Content)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) Feed(ctx context.Context) ([]entity.FeedRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.user_id, m.title, m.content, m.created_at,
		       COALESCE(u.special_member_name, ''), u.non_member_display_name
		FROM messages m
		JOIN users u ON m.user_id = u.id
		ORDER BY m.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select feed: %w", err)
	}
	defer rows.Close()

	out := []entity.FeedRow{}
	for rows.Next() {
		var f entity.FeedRow
		if err := rows.Scan(&f.ID, &f.UserID, &f.Title, &f.Content, &f.CreatedAt,
			&f.AuthorSpecialMemberName, &f.AuthorNonMemberDisplayName); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed: %w", err)
	}
	return out, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
