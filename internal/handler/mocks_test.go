package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agora-dev/agora/internal/config"
	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/markdown"
	mw "github.com/agora-dev/agora/internal/middleware"
)

// --- Mocks ---

type MockThreadService struct {
	listFunc   func(filter domain.ThreadFilter) ([]*domain.Thread, error)
	getFunc    func(slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error)
	createFunc func(data domain.ThreadCreationData) (*domain.Thread, error)
}

func (m *MockThreadService) List(ctx context.Context, filter domain.ThreadFilter) ([]*domain.Thread, error) {
	if m.listFunc != nil {
		return m.listFunc(filter)
	}
	return nil, nil
}

func (m *MockThreadService) Get(ctx context.Context, slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error) {
	if m.getFunc != nil {
		return m.getFunc(slug, id)
	}
	return testThread(id, slug, 0), nil
}

func (m *MockThreadService) Create(ctx context.Context, data domain.ThreadCreationData) (*domain.Thread, error) {
	if m.createFunc != nil {
		return m.createFunc(data)
	}
	return nil, errors.New("not implemented")
}

type MockReplyService struct {
	addFunc        func(thread *domain.Thread, data domain.ReplyCreationData) (*domain.Reply, error)
	pageFunc       func(thread *domain.Thread, viewer domain.UserId, page int) (domain.RepliesPage, error)
	favoriteFunc   func(userId domain.UserId, replyId domain.ReplyId) error
	unfavoriteFunc func(userId domain.UserId, replyId domain.ReplyId) error
}

func (m *MockReplyService) Add(ctx context.Context, thread *domain.Thread, data domain.ReplyCreationData) (*domain.Reply, error) {
	if m.addFunc != nil {
		return m.addFunc(thread, data)
	}
	reply := &domain.Reply{Id: 1, Body: data.Body, ThreadId: thread.Id}
	thread.AppendReply(reply)
	return reply, nil
}

func (m *MockReplyService) Page(ctx context.Context, thread *domain.Thread, viewer domain.UserId, page int) (domain.RepliesPage, error) {
	if m.pageFunc != nil {
		return m.pageFunc(thread, viewer, page)
	}
	return domain.RepliesPage{Replies: thread.Replies, Page: page, TotalPages: 1}, nil
}

func (m *MockReplyService) Favorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	if m.favoriteFunc != nil {
		return m.favoriteFunc(userId, replyId)
	}
	return nil
}

func (m *MockReplyService) Unfavorite(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error {
	if m.unfavoriteFunc != nil {
		return m.unfavoriteFunc(userId, replyId)
	}
	return nil
}

type MockChannelService struct {
	listFunc func() ([]domain.Channel, error)
}

func (m *MockChannelService) Create(ctx context.Context, data domain.ChannelCreationData) (domain.Channel, error) {
	return domain.Channel{Id: 1, Name: data.Name, Slug: data.Slug}, nil
}

func (m *MockChannelService) List(ctx context.Context) ([]domain.Channel, error) {
	if m.listFunc != nil {
		return m.listFunc()
	}
	return []domain.Channel{{Id: 1, Name: "Go", Slug: "go"}}, nil
}

func (m *MockChannelService) Rename(ctx context.Context, id domain.ChannelId, slug domain.ChannelSlug) error {
	return nil
}

type MockAuthService struct {
	registerFunc func(creds domain.Credentials) (domain.User, error)
	loginFunc    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(creds)
	}
	return domain.User{Id: 1, Username: creds.Username}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(creds)
	}
	return "token", nil
}

type MockProfileService struct {
	getFunc func(username domain.Username) (domain.Profile, error)
}

func (m *MockProfileService) Get(ctx context.Context, username domain.Username) (domain.Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(username)
	}
	return domain.Profile{User: domain.User{Id: 1, Username: username}}, nil
}

type MockHealthChecker struct {
	err error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

// --- Helpers ---

type testEnv struct {
	threads  *MockThreadService
	replies  *MockReplyService
	channels *MockChannelService
	auth     *MockAuthService
	profiles *MockProfileService
	health   *MockHealthChecker
}

func newTestEnv() *testEnv {
	return &testEnv{
		threads:  &MockThreadService{},
		replies:  &MockReplyService{},
		channels: &MockChannelService{},
		auth:     &MockAuthService{},
		profiles: &MockProfileService{},
		health:   &MockHealthChecker{},
	}
}

func (e *testEnv) handler() *Handler {
	tp := markdown.New()
	return New(Services{
		Threads:  e.threads,
		Replies:  e.replies,
		Channels: e.channels,
		Auth:     e.auth,
		Profiles: e.profiles,
	}, MustLoadTemplates(tp), config.Public{JwtTTL: time.Hour, RepliesPerPage: 10}, tp, e.health)
}

// router mirrors the production route patterns without the middleware stack.
func (e *testEnv) router() http.Handler {
	h := e.handler()
	r := chi.NewRouter()
	r.Get("/", h.HomeHandler)
	r.Get("/health", h.Health)
	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Get("/register", h.RegisterGetHandler)
	r.Post("/register", h.RegisterPostHandler)
	r.Post("/logout", h.LogoutHandler)
	r.Get("/channels", h.ChannelsGetHandler)
	r.Get("/profiles/{username}", h.ProfileGetHandler)
	r.Route("/threads", func(r chi.Router) {
		r.Get("/", h.ThreadsGetHandler)
		r.Post("/", h.ThreadPostHandler)
		r.Get("/create", h.ThreadCreateGetHandler)
		r.Get("/{channel}", h.ThreadsGetHandler)
		r.Get("/{channel}/{id}", h.ThreadGetHandler)
		r.Get("/{channel}/{id}/replies", h.RepliesGetHandler)
		r.Post("/{channel}/{id}/replies", h.ReplyPostHandler)
	})
	r.Post("/replies/{id}/favorites", h.FavoritePostHandler)
	r.Delete("/replies/{id}/favorites", h.FavoriteDeleteHandler)
	return r
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router().ServeHTTP(w, req)
	return w
}

func withUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), mw.UserClaimsKey, user))
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func testThread(id domain.ThreadId, slug domain.ChannelSlug, repliesCount int) *domain.Thread {
	return &domain.Thread{
		Id:           id,
		Title:        "Thread " + slug,
		Body:         "Body",
		User:         domain.User{Id: 7, Username: "john"},
		Channel:      domain.Channel{Id: 1, Name: strings.ToUpper(slug), Slug: slug},
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		RepliesCount: repliesCount,
	}
}
