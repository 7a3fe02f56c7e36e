package domain

type (
	UserId   = int64
	Username = string
	Password = string

	ChannelId   = int64
	ChannelName = string
	ChannelSlug = string

	ThreadId    = int64
	ThreadTitle = string

	ReplyId   = int64
	ReplyBody = string
)
