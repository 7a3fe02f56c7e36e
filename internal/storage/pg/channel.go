package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

func (s *Storage) CreateChannel(ctx context.Context, data domain.ChannelCreationData) (domain.ChannelId, error) {
	var id domain.ChannelId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO channels (name, slug) VALUES ($1, $2) RETURNING id",
		data.Name, data.Slug,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, internal_errors.Conflict("Channel with this slug already exists")
		}
		return -1, fmt.Errorf("failed to insert channel: %w", err)
	}
	return id, nil
}

func (s *Storage) ChannelBySlug(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	return s.scanChannel(ctx, "SELECT id, name, slug, created_at FROM channels WHERE slug = $1", slug)
}

func (s *Storage) ChannelById(ctx context.Context, id domain.ChannelId) (domain.Channel, error) {
	return s.scanChannel(ctx, "SELECT id, name, slug, created_at FROM channels WHERE id = $1", id)
}

func (s *Storage) scanChannel(ctx context.Context, query string, arg any) (domain.Channel, error) {
	var channel domain.Channel
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&channel.Id, &channel.Name, &channel.Slug, &channel.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Channel{}, internal_errors.NotFound("Channel not found")
		}
		return domain.Channel{}, fmt.Errorf("failed to fetch channel: %w", err)
	}
	return channel, nil
}

func (s *Storage) Channels(ctx context.Context) ([]domain.Channel, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, slug, created_at FROM channels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channels: %w", err)
	}
	defer rows.Close()

	channels := []domain.Channel{}
	for rows.Next() {
		var c domain.Channel
		if err := rows.Scan(&c.Id, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return channels, nil
}

func (s *Storage) UpdateChannelSlug(ctx context.Context, id domain.ChannelId, slug domain.ChannelSlug) error {
	result, err := s.db.ExecContext(ctx, "UPDATE channels SET slug = $1 WHERE id = $2", slug, id)
	if err != nil {
		if isUniqueViolation(err) {
			return internal_errors.Conflict("Channel with this slug already exists")
		}
		return fmt.Errorf("failed to update channel slug: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Channel not found")
	}
	return nil
}
