package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (*domain.Reply, error) {
	reply := domain.Reply{ThreadId: data.ThreadId, Body: data.Body}
	err := s.db.QueryRowContext(ctx, `
        WITH inserted AS (
            INSERT INTO replies (thread_id, user_id, body)
            VALUES ($1, $2, $3)
            RETURNING id, user_id, created_at
        )
        SELECT i.id, i.created_at, u.id, u.username, u.created_at
        FROM inserted i
        JOIN users u ON u.id = i.user_id
    `, data.ThreadId, data.UserId, data.Body).Scan(
		&reply.Id, &reply.CreatedAt, &reply.User.Id, &reply.User.Username, &reply.User.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, internal_errors.NotFound("Thread or user not found")
		}
		return nil, fmt.Errorf("failed to insert reply: %w", err)
	}
	return &reply, nil
}

// UpdateReply saves body, thread and creator of an existing reply.
func (s *Storage) UpdateReply(ctx context.Context, reply *domain.Reply) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE replies SET body = $1, thread_id = $2, user_id = $3 WHERE id = $4",
		reply.Body, reply.ThreadId, reply.User.Id, reply.Id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return internal_errors.NotFound("Thread or user not found")
		}
		return fmt.Errorf("failed to update reply: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Reply not found")
	}
	return nil
}

func (s *Storage) GetReply(ctx context.Context, id domain.ReplyId) (*domain.Reply, error) {
	var reply domain.Reply
	err := s.db.QueryRowContext(ctx, `
        SELECT r.id, r.thread_id, r.body, r.created_at, u.id, u.username, u.created_at
        FROM replies r
        JOIN users u ON u.id = r.user_id
        WHERE r.id = $1
    `, id).Scan(&reply.Id, &reply.ThreadId, &reply.Body, &reply.CreatedAt, &reply.User.Id, &reply.User.Username, &reply.User.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Reply not found")
		}
		return nil, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return &reply, nil
}

// GetReplies returns replies of a thread oldest first. viewer is the id of the
// requesting user (0 for anonymous) and drives IsFavorited.
func (s *Storage) GetReplies(ctx context.Context, threadId domain.ThreadId, viewer domain.UserId, limit, offset int) ([]*domain.Reply, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT
            r.id, r.thread_id, r.body, r.created_at,
            u.id, u.username, u.created_at,
            (SELECT COUNT(*) FROM favorites f WHERE f.reply_id = r.id) AS favorites_count,
            EXISTS (SELECT 1 FROM favorites f WHERE f.reply_id = r.id AND f.user_id = $2) AS is_favorited
        FROM replies r
        JOIN users u ON u.id = r.user_id
        WHERE r.thread_id = $1
        ORDER BY r.created_at, r.id
        LIMIT $3 OFFSET $4
    `, threadId, viewer, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replies: %w", err)
	}
	defer rows.Close()

	replies := []*domain.Reply{}
	for rows.Next() {
		var r domain.Reply
		if err := rows.Scan(
			&r.Id, &r.ThreadId, &r.Body, &r.CreatedAt,
			&r.User.Id, &r.User.Username, &r.User.CreatedAt,
			&r.FavoritesCount, &r.IsFavorited,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return replies, nil
}
