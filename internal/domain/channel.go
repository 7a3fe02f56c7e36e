package domain

import "time"

type ChannelCreationData struct {
	Name ChannelName
	Slug ChannelSlug
}

type Channel struct {
	Id        ChannelId
	Name      ChannelName
	Slug      ChannelSlug
	CreatedAt time.Time
}
