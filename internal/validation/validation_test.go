package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agora-dev/agora/internal/errors"
)

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, http.StatusBadRequest, errors.StatusCode(err))
	}
}

func TestThreadValidator(t *testing.T) {
	v := &ThreadValidator{}

	assert.NoError(t, v.Title("How do I cancel a context?"))
	assertBadRequest(t, v.Title("   "))
	assertBadRequest(t, v.Title(strings.Repeat("я", ThreadTitleMaxLen+1)))
	assert.NoError(t, v.Title(strings.Repeat("я", ThreadTitleMaxLen)))

	assert.NoError(t, v.Body("body"))
	assertBadRequest(t, v.Body(""))
}

func TestReplyValidator(t *testing.T) {
	v := &ReplyValidator{}

	assert.NoError(t, v.Body("egg"))
	assertBadRequest(t, v.Body("\n\t "))
	assertBadRequest(t, v.Body(strings.Repeat("a", TextMaxLen+1)))
}

func TestChannelValidator(t *testing.T) {
	v := &ChannelValidator{}

	tests := []struct {
		slug  string
		valid bool
	}{
		{"golang", true},
		{"go-1-22", true},
		{"Golang", false},
		{"go lang", false},
		{"-go", false},
		{"go--lang", false},
		{"", false},
		{"create", false},
		{"create-more", true},
		{strings.Repeat("a", channelSlugMaxLen+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := v.Slug(tt.slug)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assertBadRequest(t, err)
			}
		})
	}

	assert.NoError(t, v.Name("Go"))
	assertBadRequest(t, v.Name(""))
}

func TestUserValidator(t *testing.T) {
	v := &UserValidator{}

	assert.NoError(t, v.Username("alice_99"))
	assertBadRequest(t, v.Username("al"))
	assertBadRequest(t, v.Username("alice!"))
	assert.NoError(t, v.Password("correct horse"))
	assertBadRequest(t, v.Password("short"))
}
