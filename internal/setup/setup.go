package setup

import (
	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/handler"
	"github.com/agora-dev/agora/internal/jwt"
	"github.com/agora-dev/agora/internal/markdown"
	"github.com/agora-dev/agora/internal/middleware"
	"github.com/agora-dev/agora/internal/service"
	"github.com/agora-dev/agora/internal/storage/pg"
	"github.com/agora-dev/agora/internal/validation"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewDependencies(cfg, storage), nil
}

// NewDependencies wires services and handlers around an already opened storage.
func NewDependencies(cfg *config.Config, storage *pg.Storage) *Dependencies {
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	services := handler.Services{
		Threads:  service.NewThread(storage, &validation.ThreadValidator{}),
		Replies:  service.NewReply(storage, &validation.ReplyValidator{}, &cfg.Public),
		Channels: service.NewChannel(storage, &validation.ChannelValidator{}),
		Auth:     service.NewAuth(storage, &validation.UserValidator{}, jwtService),
		Profiles: service.NewProfile(storage),
	}

	textProcessor := markdown.New()
	h := handler.New(services, handler.MustLoadTemplates(textProcessor), cfg.Public, textProcessor, storage)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService, cfg.Public.SecureCookies),
		Config:         cfg,
	}
}
