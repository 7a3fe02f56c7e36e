// Package factory builds valid, persisted forum objects with randomized defaults.
// Every zero-valued attribute is filled in; anything set by the caller is kept.
package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agora-dev/agora/internal/domain"
)

// DefaultPassword is the password of every user created without an explicit hash.
const DefaultPassword = "password"

type Storage interface {
	CreateUser(ctx context.Context, user domain.User) (domain.UserId, error)
	CreateChannel(ctx context.Context, data domain.ChannelCreationData) (domain.ChannelId, error)
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (*domain.Reply, error)
}

type Factory struct {
	storage  Storage
	passHash string
}

func New(storage Storage) (*Factory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Factory{storage: storage, passHash: string(hash)}, nil
}

type UserAttrs struct {
	Username domain.Username
	PassHash string
}

type ChannelAttrs struct {
	Name domain.ChannelName
	Slug domain.ChannelSlug
}

type ThreadAttrs struct {
	Title   domain.ThreadTitle
	Body    string
	User    *domain.User
	Channel *domain.Channel
}

type ReplyAttrs struct {
	Body   domain.ReplyBody
	User   *domain.User
	Thread *domain.Thread
}

func token() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (f *Factory) User(ctx context.Context, attrs UserAttrs) (*domain.User, error) {
	if attrs.Username == "" {
		attrs.Username = "user_" + token()
	}
	if attrs.PassHash == "" {
		attrs.PassHash = f.passHash
	}
	user := domain.User{Username: attrs.Username, PassHash: attrs.PassHash}
	id, err := f.storage.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("factory user: %w", err)
	}
	user.Id = id
	return &user, nil
}

func (f *Factory) Channel(ctx context.Context, attrs ChannelAttrs) (*domain.Channel, error) {
	if attrs.Slug == "" {
		attrs.Slug = "channel-" + token()
	}
	if attrs.Name == "" {
		attrs.Name = "Channel " + attrs.Slug
	}
	id, err := f.storage.CreateChannel(ctx, domain.ChannelCreationData{Name: attrs.Name, Slug: attrs.Slug})
	if err != nil {
		return nil, fmt.Errorf("factory channel: %w", err)
	}
	return &domain.Channel{Id: id, Name: attrs.Name, Slug: attrs.Slug}, nil
}

// Thread creates a thread, plus a fresh user and channel when none are given.
func (f *Factory) Thread(ctx context.Context, attrs ThreadAttrs) (*domain.Thread, error) {
	var err error
	if attrs.User == nil {
		if attrs.User, err = f.User(ctx, UserAttrs{}); err != nil {
			return nil, err
		}
	}
	if attrs.Channel == nil {
		if attrs.Channel, err = f.Channel(ctx, ChannelAttrs{}); err != nil {
			return nil, err
		}
	}
	if attrs.Title == "" {
		attrs.Title = "Thread " + token()
	}
	if attrs.Body == "" {
		attrs.Body = "Body of thread " + token()
	}

	id, err := f.storage.CreateThread(ctx, domain.ThreadCreationData{
		Title:     attrs.Title,
		Body:      attrs.Body,
		UserId:    attrs.User.Id,
		ChannelId: attrs.Channel.Id,
	})
	if err != nil {
		return nil, fmt.Errorf("factory thread: %w", err)
	}
	return &domain.Thread{
		Id:      id,
		Title:   attrs.Title,
		Body:    attrs.Body,
		User:    *attrs.User,
		Channel: *attrs.Channel,
		Replies: []*domain.Reply{},
	}, nil
}

// Reply creates a reply, plus a fresh user and thread when none are given.
// A given thread gets the reply appended.
func (f *Factory) Reply(ctx context.Context, attrs ReplyAttrs) (*domain.Reply, error) {
	var err error
	if attrs.User == nil {
		if attrs.User, err = f.User(ctx, UserAttrs{}); err != nil {
			return nil, err
		}
	}
	if attrs.Thread == nil {
		if attrs.Thread, err = f.Thread(ctx, ThreadAttrs{}); err != nil {
			return nil, err
		}
	}
	if attrs.Body == "" {
		attrs.Body = "Reply " + token()
	}

	reply, err := f.storage.CreateReply(ctx, domain.ReplyCreationData{
		ThreadId: attrs.Thread.Id,
		Body:     attrs.Body,
		UserId:   attrs.User.Id,
	})
	if err != nil {
		return nil, fmt.Errorf("factory reply: %w", err)
	}
	attrs.Thread.AppendReply(reply)
	return reply, nil
}

// Replies creates n replies sharing attrs.
func (f *Factory) Replies(ctx context.Context, n int, attrs ReplyAttrs) ([]*domain.Reply, error) {
	replies := make([]*domain.Reply, 0, n)
	for i := 0; i < n; i++ {
		reply, err := f.Reply(ctx, attrs)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, nil
}
