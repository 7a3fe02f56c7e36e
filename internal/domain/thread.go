package domain

import (
	"fmt"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title     ThreadTitle
	Body      string
	UserId    UserId
	ChannelId ChannelId
}

// ThreadFilter narrows a thread listing. Zero value lists everything.
type ThreadFilter struct {
	Channel ChannelSlug // only threads in the channel with this slug
	By      Username    // only threads created by this user
	Popular bool        // order by reply count, most replied first
}

type Thread struct {
	Id           ThreadId
	Title        ThreadTitle
	Body         string
	User         User
	Channel      Channel
	CreatedAt    time.Time
	RepliesCount int
	Replies      []*Reply
}

// ThreadPath is the canonical url of a thread. Router pattern /threads/{channel}/{id} must match it.
func ThreadPath(slug ChannelSlug, id ThreadId) string {
	return fmt.Sprintf("/threads/%s/%d", slug, id)
}

// Path is derived from the current channel slug, so renaming a channel moves its threads.
func (t *Thread) Path() string {
	return ThreadPath(t.Channel.Slug, t.Id)
}

// AppendReply records a reply that was already persisted for this thread.
func (t *Thread) AppendReply(reply *Reply) {
	t.Replies = append(t.Replies, reply)
	t.RepliesCount++
}

func (t *Thread) String() string {
	return fmt.Sprintf("[id:%d, title:%s, channel:%s, user:%s, replies:%d]", t.Id, t.Title, t.Channel.Slug, t.User.Username, t.RepliesCount)
}
