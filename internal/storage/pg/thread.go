package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

// threadSelect joins a thread with its creator, channel and reply count.
const threadSelect = `
    SELECT
        t.id, t.title, t.body, t.created_at,
        u.id, u.username, u.created_at,
        c.id, c.name, c.slug, c.created_at,
        (SELECT COUNT(*) FROM replies r WHERE r.thread_id = t.id) AS replies_count
    FROM threads t
    JOIN users u ON u.id = t.user_id
    JOIN channels c ON c.id = t.channel_id
`

const (
	orderNewest  = "t.created_at DESC, t.id DESC"
	orderPopular = "replies_count DESC, t.created_at DESC, t.id DESC"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (*domain.Thread, error) {
	var t domain.Thread
	err := row.Scan(
		&t.Id, &t.Title, &t.Body, &t.CreatedAt,
		&t.User.Id, &t.User.Username, &t.User.CreatedAt,
		&t.Channel.Id, &t.Channel.Name, &t.Channel.Slug, &t.Channel.CreatedAt,
		&t.RepliesCount,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO threads (title, body, user_id, channel_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, data.Title, data.Body, data.UserId, data.ChannelId).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return -1, internal_errors.NotFound("Channel or user not found")
		}
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

// GetThread returns thread metadata with its reply count; replies are paged separately.
func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error) {
	thread, err := scanThread(s.db.QueryRowContext(ctx, threadSelect+" WHERE t.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Thread not found")
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// ListThreads applies every non-empty filter field. Unknown slugs or usernames
// simply match no rows.
func (s *Storage) ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error) {
	order := orderNewest
	if filter.Popular {
		order = orderPopular
	}
	query := fmt.Sprintf(`%s
        WHERE ($1::text = '' OR c.slug = $1)
          AND ($2::text = '' OR u.username = $2)
        ORDER BY %s
    `, threadSelect, order)

	rows, err := s.db.QueryContext(ctx, query, filter.Channel, filter.By)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	threads := []*domain.Thread{}
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// UpdateThread saves title, body, creator and channel of an existing thread.
func (s *Storage) UpdateThread(ctx context.Context, thread *domain.Thread) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE threads
        SET title = $1, body = $2, user_id = $3, channel_id = $4
        WHERE id = $5
    `, thread.Title, thread.Body, thread.User.Id, thread.Channel.Id, thread.Id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return internal_errors.NotFound("Channel or user not found")
		}
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

// DeleteThread removes a thread; replies and favorites cascade.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}
