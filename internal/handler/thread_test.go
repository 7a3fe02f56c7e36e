package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-dev/agora/internal/domain"
	internal_errors "github.com/agora-dev/agora/internal/errors"
)

func TestThreadsGetHandler(t *testing.T) {
	t.Run("renders reply counts with pluralization", func(t *testing.T) {
		env := newTestEnv()
		env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
			return []*domain.Thread{
				testThread(1, "go", 3),
				testThread(2, "go", 1),
				testThread(3, "go", 0),
			}, nil
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "\n3\ncomments\n")
		assert.Contains(t, body, "\n1\ncomment\n")
		assert.Contains(t, body, "\n0\ncomments\n")
		assert.Contains(t, body, `href="/threads/go/1"`)
	})

	t.Run("popular keeps service order", func(t *testing.T) {
		env := newTestEnv()
		env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
			require.True(t, filter.Popular)
			return []*domain.Thread{
				testThread(1, "go", 3),
				testThread(2, "go", 2),
				testThread(3, "go", 1),
			}, nil
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/?popular=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		three := strings.Index(body, "\n3\ncomments\n")
		two := strings.Index(body, "\n2\ncomments\n")
		one := strings.Index(body, "\n1\ncomment\n")
		require.True(t, three >= 0 && two >= 0 && one >= 0)
		assert.Less(t, three, two)
		assert.Less(t, two, one)
	})

	t.Run("query filters are passed to the service", func(t *testing.T) {
		env := newTestEnv()
		var got domain.ThreadFilter
		env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
			got = filter
			return nil, nil
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/?channel=go&by=john&popular=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.ThreadFilter{Channel: "go", By: "john", Popular: true}, got)
		assert.Contains(t, w.Body.String(), "There are no threads here yet.")
	})

	t.Run("channel in path", func(t *testing.T) {
		env := newTestEnv()
		var got domain.ThreadFilter
		env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
			got = filter
			return nil, nil
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/php", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.ThreadFilter{Channel: "php"}, got)
	})

	t.Run("popular disabled values", func(t *testing.T) {
		for _, value := range []string{"0", "false", ""} {
			env := newTestEnv()
			var got domain.ThreadFilter
			env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
				got = filter
				return nil, nil
			}
			env.do(httptest.NewRequest(http.MethodGet, "/threads/?popular="+value, nil))
			assert.False(t, got.Popular, "popular=%q", value)
		}
	})

	t.Run("service error", func(t *testing.T) {
		env := newTestEnv()
		env.threads.listFunc = func(filter domain.ThreadFilter) ([]*domain.Thread, error) {
			return nil, assert.AnError
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestThreadGetHandler(t *testing.T) {
	t.Run("renders thread with replies", func(t *testing.T) {
		env := newTestEnv()
		env.threads.getFunc = func(slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error) {
			thread := testThread(id, slug, 1)
			thread.Title = "Generics are here"
			thread.Replies = []*domain.Reply{{Id: 5, Body: "**nice**", User: domain.User{Username: "jane"}, FavoritesCount: 2}}
			return thread, nil
		}

		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/go/42", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Generics are here")
		assert.Contains(t, body, "<strong>nice</strong>")
		assert.Contains(t, body, "\n1\ncomment\n")
		assert.Contains(t, body, "2 favorites")
		assert.Contains(t, body, "Sign in")
	})

	t.Run("signed in user gets the reply form", func(t *testing.T) {
		env := newTestEnv()
		req := withUser(httptest.NewRequest(http.MethodGet, "/threads/go/42", nil), &domain.User{Id: 1, Username: "jane"})

		w := env.do(req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/threads/go/42/replies"`)
	})

	t.Run("non integer id", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/go/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("channel mismatch", func(t *testing.T) {
		env := newTestEnv()
		env.threads.getFunc = func(slug domain.ChannelSlug, id domain.ThreadId) (*domain.Thread, error) {
			return nil, internal_errors.NotFound("Thread not found")
		}
		w := env.do(httptest.NewRequest(http.MethodGet, "/threads/php/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestThreadPostHandler(t *testing.T) {
	user := &domain.User{Id: 3, Username: "jane"}

	t.Run("creates thread and redirects to it", func(t *testing.T) {
		env := newTestEnv()
		var got domain.ThreadCreationData
		env.threads.createFunc = func(data domain.ThreadCreationData) (*domain.Thread, error) {
			got = data
			return testThread(9, "go", 0), nil
		}

		req := formRequest(http.MethodPost, "/threads/", url.Values{"title": {"Hello"}, "body": {"World"}, "channel": {"1"}})
		w := env.do(withUser(req, user))

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/threads/go/9", w.Header().Get("Location"))
		assert.Equal(t, domain.ThreadCreationData{Title: "Hello", Body: "World", UserId: 3, ChannelId: 1}, got)
	})

	t.Run("missing fields re-render the form", func(t *testing.T) {
		env := newTestEnv()
		req := formRequest(http.MethodPost, "/threads/", url.Values{"title": {"Hello"}})
		w := env.do(withUser(req, user))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Required fields missing")
		assert.Contains(t, w.Body.String(), `value="Hello"`)
	})

	t.Run("unknown channel", func(t *testing.T) {
		env := newTestEnv()
		env.threads.createFunc = func(data domain.ThreadCreationData) (*domain.Thread, error) {
			return nil, internal_errors.NotFound("Channel not found")
		}
		req := formRequest(http.MethodPost, "/threads/", url.Values{"title": {"Hello"}, "body": {"World"}, "channel": {"99"}})
		w := env.do(withUser(req, user))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Channel not found")
	})

	t.Run("anonymous", func(t *testing.T) {
		env := newTestEnv()
		req := formRequest(http.MethodPost, "/threads/", url.Values{"title": {"Hello"}, "body": {"World"}, "channel": {"1"}})
		w := env.do(req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestThreadCreateGetHandler(t *testing.T) {
	env := newTestEnv()
	w := env.do(withUser(httptest.NewRequest(http.MethodGet, "/threads/create", nil), &domain.User{Id: 1, Username: "jane"}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="1">Go</option>`)
}
