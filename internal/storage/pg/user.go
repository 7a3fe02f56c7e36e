package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

func (s *Storage) CreateUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, pass_hash) VALUES ($1, $2) RETURNING id",
		user.Username, user.PassHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, internal_errors.Conflict("Username is already taken")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	return s.scanUser(ctx, "SELECT id, username, pass_hash, created_at FROM users WHERE username = $1", username)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	return s.scanUser(ctx, "SELECT id, username, pass_hash, created_at FROM users WHERE id = $1", id)
}

func (s *Storage) scanUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.Id, &user.Username, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserRepliesCount(ctx context.Context, id domain.UserId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM replies WHERE user_id = $1", id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count user replies: %w", err)
	}
	return count, nil
}
