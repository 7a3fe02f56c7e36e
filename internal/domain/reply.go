package domain

import "time"

type ReplyCreationData struct {
	ThreadId ThreadId
	Body     ReplyBody
	UserId   UserId
}

type Reply struct {
	Id             ReplyId
	Body           ReplyBody
	User           User
	ThreadId       ThreadId
	CreatedAt      time.Time
	FavoritesCount int
	IsFavorited    bool // favorited by the viewing user, if any
}

// RepliesPage is a single page of a thread's replies.
type RepliesPage struct {
	Replies    []*Reply
	Page       int
	TotalPages int
}

func (p RepliesPage) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p RepliesPage) HasPrev() bool {
	return p.Page > 1
}
