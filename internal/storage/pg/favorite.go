package pg

import (
	"context"
	"fmt"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

// AddFavorite is idempotent: favoriting twice keeps a single row.
func (s *Storage) AddFavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO favorites (user_id, reply_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, reply_id) DO NOTHING
    `, userId, replyId)
	if err != nil {
		if isForeignKeyViolation(err) {
			return internal_errors.NotFound("Reply not found")
		}
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (s *Storage) RemoveFavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM favorites WHERE user_id = $1 AND reply_id = $2", userId, replyId); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

func (s *Storage) FavoritesCount(ctx context.Context, replyId domain.ReplyId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites WHERE reply_id = $1", replyId).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
