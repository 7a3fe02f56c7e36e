package service

import (
	"context"

	"github.com/agora-dev/agora/internal/domain"
)

type ProfileService interface {
	Get(ctx context.Context, username domain.Username) (domain.Profile, error)
}

type ProfileStorage interface {
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error)
	UserRepliesCount(ctx context.Context, id domain.UserId) (int, error)
}

type Profile struct {
	storage ProfileStorage
}

func NewProfile(storage ProfileStorage) *Profile {
	return &Profile{storage}
}

// Get returns the user with their threads, newest first. Unknown user is a 404,
// unlike the thread listing filter.
func (p *Profile) Get(ctx context.Context, username domain.Username) (domain.Profile, error) {
	user, err := p.storage.UserByUsername(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}
	user.PassHash = ""

	threads, err := p.storage.ListThreads(ctx, domain.ThreadFilter{By: user.Username})
	if err != nil {
		return domain.Profile{}, err
	}
	repliesCount, err := p.storage.UserRepliesCount(ctx, user.Id)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{User: user, Threads: threads, RepliesCount: repliesCount}, nil
}
