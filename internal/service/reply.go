package service

import (
	"context"

	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
)

type ReplyService interface {
	Add(ctx context.Context, thread *domain.Thread, data domain.ReplyCreationData) (*domain.Reply, error)
	Page(ctx context.Context, thread *domain.Thread, viewer domain.UserId, page int) (domain.RepliesPage, error)
	Favorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error
	Unfavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (*domain.Reply, error)
	GetReplies(ctx context.Context, threadId domain.ThreadId, viewer domain.UserId, limit, offset int) ([]*domain.Reply, error)
	AddFavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error
	RemoveFavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error
}

type ReplyValidator interface {
	Body(body string) error
}

type Reply struct {
	storage   ReplyStorage
	validator ReplyValidator
	cfg       *config.Public
}

func NewReply(storage ReplyStorage, validator ReplyValidator, cfg *config.Public) *Reply {
	return &Reply{storage, validator, cfg}
}

// Add persists a reply on thread and appends it to thread.Replies, so the
// caller sees it without reloading the thread.
func (r *Reply) Add(ctx context.Context, thread *domain.Thread, data domain.ReplyCreationData) (*domain.Reply, error) {
	if err := r.validator.Body(data.Body); err != nil {
		return nil, err
	}
	data.ThreadId = thread.Id

	reply, err := r.storage.CreateReply(ctx, data)
	if err != nil {
		return nil, err
	}
	thread.AppendReply(reply)
	return reply, nil
}

// Page loads a page of replies (1-based) into thread.Replies and returns it.
func (r *Reply) Page(ctx context.Context, thread *domain.Thread, viewer domain.UserId, page int) (domain.RepliesPage, error) {
	if page < 1 {
		return domain.RepliesPage{}, errors.BadRequest("Page should be positive")
	}
	perPage := r.cfg.RepliesPerPage
	totalPages := (thread.RepliesCount + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	// Past the end there is nothing to load, and the offset could overflow.
	if page > totalPages {
		thread.Replies = []*domain.Reply{}
		return domain.RepliesPage{Replies: thread.Replies, Page: page, TotalPages: totalPages}, nil
	}

	replies, err := r.storage.GetReplies(ctx, thread.Id, viewer, perPage, (page-1)*perPage)
	if err != nil {
		return domain.RepliesPage{}, err
	}
	thread.Replies = replies

	return domain.RepliesPage{Replies: replies, Page: page, TotalPages: totalPages}, nil
}

func (r *Reply) Favorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	return r.storage.AddFavorite(ctx, userId, replyId)
}

func (r *Reply) Unfavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	return r.storage.RemoveFavorite(ctx, userId, replyId)
}
