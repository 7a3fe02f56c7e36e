package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/agora-dev/agora/internal/middleware"
	"github.com/agora-dev/agora/internal/middleware/metrics"
	rl "github.com/agora-dev/agora/internal/middleware/ratelimiter"
	"github.com/agora-dev/agora/internal/setup"
)

const pageCSP = "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"

const limiterCleanupInterval = 10 * time.Minute

// New creates the chi router with all the routes.
// Rate limiter cleanup runs until ctx is done.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(ctx context.Context, deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	public := deps.Config.Public

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(public.SecureCookies, pageCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Posting limits are per signed-in user
	postLimiter := rl.New(public.PostRps, 1, time.Hour)
	loginLimiter := rl.OnceInSecond()
	pageLimiter := rl.Rps10()
	favoriteLimiter := rl.Rps10()
	for _, limiter := range []*rl.UserRateLimiter{postLimiter, loginLimiter, pageLimiter, favoriteLimiter} {
		limiter.StartCleanup(limiterCleanupInterval, ctx.Done())
	}

	r.Group(func(r chi.Router) {
		r.Use(authMw.OptionalAuth())

		r.Get("/", h.HomeHandler)
		r.Get("/channels", h.ChannelsGetHandler)
		r.Get("/profiles/{username}", h.ProfileGetHandler)

		r.Get("/login", h.LoginGetHandler)
		r.Get("/register", h.RegisterGetHandler)
		r.Post("/logout", h.LogoutHandler)
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(loginLimiter, mw.GetIP)) // 1 per second by IP
			r.Post("/login", h.LoginPostHandler)
			r.Post("/register", h.RegisterPostHandler)
		})

		r.Route("/threads", func(r chi.Router) {
			r.Get("/", h.ThreadsGetHandler)
			r.With(authMw.NeedAuth()).Get("/create", h.ThreadCreateGetHandler)
			r.With(authMw.NeedAuth(), mw.RateLimit(postLimiter, mw.GetUserIDFromContext)).Post("/", h.ThreadPostHandler)

			r.Get("/{channel}", h.ThreadsGetHandler)
			r.Get("/{channel}/{id}", h.ThreadGetHandler)
			r.With(mw.RateLimit(pageLimiter, mw.GetIP)).Get("/{channel}/{id}/replies", h.RepliesGetHandler)
			r.With(authMw.NeedAuth(), mw.RateLimit(postLimiter, mw.GetUserIDFromContext)).Post("/{channel}/{id}/replies", h.ReplyPostHandler)
		})

		r.Route("/replies/{id}/favorites", func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Use(mw.RateLimit(favoriteLimiter, mw.GetUserIDFromContext)) // 10 RPS per user
			r.Post("/", h.FavoritePostHandler)
			r.Delete("/", h.FavoriteDeleteHandler)
		})
	})

	return r
}
