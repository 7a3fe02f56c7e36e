package service

import (
	"context"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/logger"
)

type ThreadService interface {
	List(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error)
	Get(ctx context.Context, slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error)
	Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error)
}

type ThreadStorage interface {
	ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error)
	GetThread(ctx context.Context, id domain.ThreadId) (*domain.Thread, error)
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
}

type ThreadValidator interface {
	Title(title string) error
	Body(body string) error
}

type Thread struct {
	storage   ThreadStorage
	validator ThreadValidator
}

func NewThread(storage ThreadStorage, validator ThreadValidator) *Thread {
	return &Thread{storage, validator}
}

// List returns threads matching every set filter field. Filtering by an unknown
// channel or user yields an empty list, never an error.
func (t *Thread) List(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error) {
	return t.storage.ListThreads(ctx, filter)
}

// Get returns thread metadata. The thread must live in the channel named in the url.
func (t *Thread) Get(ctx context.Context, slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error) {
	thread, err := t.storage.GetThread(ctx, id)
	if err != nil {
		return nil, err
	}
	if thread.Channel.Slug != slug {
		return nil, errors.NotFound("Thread not found")
	}
	return thread, nil
}

func (t *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error) {
	if err := t.validator.Title(data.Title); err != nil {
		return nil, err
	}
	if err := t.validator.Body(data.Body); err != nil {
		return nil, err
	}

	id, err := t.storage.CreateThread(ctx, data)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("thread created", "threadId", id, "channelId", data.ChannelId, "userId", data.UserId)

	return t.storage.GetThread(ctx, id)
}
