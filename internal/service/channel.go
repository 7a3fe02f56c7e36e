package service

import (
	"context"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/logger"
)

type ChannelService interface {
	Create(ctx context.Context, data domain.ChannelCreationData) (domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	Rename(ctx context.Context, id domain.ChannelId, slug domain.ChannelSlug) error
}

type ChannelStorage interface {
	CreateChannel(ctx context.Context, data domain.ChannelCreationData) (domain.ChannelId, error)
	ChannelById(ctx context.Context, id domain.ChannelId) (domain.Channel, error)
	Channels(ctx context.Context) ([]domain.Channel, error)
	UpdateChannelSlug(ctx context.Context, id domain.ChannelId, slug domain.ChannelSlug) error
}

type ChannelValidator interface {
	Name(name string) error
	Slug(slug string) error
}

type Channel struct {
	storage   ChannelStorage
	validator ChannelValidator
}

func NewChannel(storage ChannelStorage, validator ChannelValidator) *Channel {
	return &Channel{storage, validator}
}

func (c *Channel) Create(ctx context.Context, data domain.ChannelCreationData) (domain.Channel, error) {
	if err := c.validator.Name(data.Name); err != nil {
		return domain.Channel{}, err
	}
	if err := c.validator.Slug(data.Slug); err != nil {
		return domain.Channel{}, err
	}
	id, err := c.storage.CreateChannel(ctx, data)
	if err != nil {
		return domain.Channel{}, err
	}
	logger.Log.Info("channel created", "channelId", id, "slug", data.Slug)
	return c.storage.ChannelById(ctx, id)
}

func (c *Channel) List(ctx context.Context) ([]domain.Channel, error) {
	return c.storage.Channels(ctx)
}

// Rename changes the slug. Thread paths are derived, so nothing else needs updating.
func (c *Channel) Rename(ctx context.Context, id domain.ChannelId, slug domain.ChannelSlug) error {
	if err := c.validator.Slug(slug); err != nil {
		return err
	}
	return c.storage.UpdateChannelSlug(ctx, id, slug)
}
