package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
)

// MemoryStorage keeps channels by slug and rejects duplicates like the unique index does.
type MemoryStorage struct {
	nextId   int64
	channels map[domain.ChannelSlug]domain.Channel
	threads  int
	replies  int
}

func newMemoryStorage() *MemoryStorage {
	return &MemoryStorage{channels: map[domain.ChannelSlug]domain.Channel{}}
}

func (m *MemoryStorage) id() int64 {
	m.nextId++
	return m.nextId
}

func (m *MemoryStorage) CreateUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	return m.id(), nil
}

func (m *MemoryStorage) CreateChannel(ctx context.Context, data domain.ChannelCreationData) (domain.ChannelId, error) {
	if _, ok := m.channels[data.Slug]; ok {
		return -1, errors.Conflict("Channel slug is taken")
	}
	id := m.id()
	m.channels[data.Slug] = domain.Channel{Id: id, Name: data.Name, Slug: data.Slug}
	return id, nil
}

func (m *MemoryStorage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	m.threads++
	return m.id(), nil
}

func (m *MemoryStorage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (*domain.Reply, error) {
	m.replies++
	return &domain.Reply{Id: m.id(), ThreadId: data.ThreadId, Body: data.Body, User: domain.User{Id: data.UserId}}, nil
}

func (m *MemoryStorage) ChannelBySlug(ctx context.Context, slug domain.ChannelSlug) (domain.Channel, error) {
	channel, ok := m.channels[slug]
	if !ok {
		return domain.Channel{}, errors.NotFound("Channel not found")
	}
	return channel, nil
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, options{users: 1}.validate())
	assert.Error(t, options{users: 0}.validate())
	assert.Error(t, options{users: 1, threads: -1}.validate())
	assert.Error(t, options{users: 1, maxReplies: -1}.validate())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("rerun reuses channels", func(t *testing.T) {
		storage := newMemoryStorage()
		opts := options{users: 2, threads: 3, maxReplies: 2}

		require.NoError(t, seed(ctx, storage, opts))
		first := storage.channels["go"]
		require.NoError(t, seed(ctx, storage, opts))

		assert.Len(t, storage.channels, len(channels))
		assert.Equal(t, first, storage.channels["go"])
		assert.Equal(t, 6, storage.threads)
	})

	t.Run("no replies", func(t *testing.T) {
		storage := newMemoryStorage()

		require.NoError(t, seed(ctx, storage, options{users: 1, threads: 4}))

		assert.Equal(t, 4, storage.threads)
		assert.Zero(t, storage.replies)
	})

	t.Run("invalid options touch nothing", func(t *testing.T) {
		storage := newMemoryStorage()

		assert.Error(t, seed(ctx, storage, options{users: 0, threads: 1}))
		assert.Error(t, seed(ctx, storage, options{users: 1, maxReplies: -1}))

		assert.Empty(t, storage.channels)
		assert.Zero(t, storage.nextId)
	})
}
