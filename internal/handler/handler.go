package handler

import (
	"context"
	"html/template"

	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/markdown"
	"github.com/agora-dev/agora/internal/service"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services groups the business logic the handlers delegate to.
type Services struct {
	Threads  service.ThreadService
	Replies  service.ReplyService
	Channels service.ChannelService
	Auth     service.AuthService
	Profiles service.ProfileService
}

type Handler struct {
	Templates     map[string]*template.Template
	Public        config.Public
	TextProcessor *markdown.TextProcessor

	threads  service.ThreadService
	replies  service.ReplyService
	channels service.ChannelService
	auth     service.AuthService
	profiles service.ProfileService
	health   HealthChecker
}

func New(services Services, templates map[string]*template.Template, publicCfg config.Public, textProcessor *markdown.TextProcessor, health HealthChecker) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		TextProcessor: textProcessor,
		threads:       services.Threads,
		replies:       services.Replies,
		channels:      services.Channels,
		auth:          services.Auth,
		profiles:      services.Profiles,
		health:        health,
	}
}
