// Package validation holds field rules for user supplied text.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agora-dev/agora/internal/errors"
)

const (
	ThreadTitleMaxLen = 200
	TextMaxLen        = 10_000
	channelNameMaxLen = 50
	channelSlugMaxLen = 50
	usernameMinLen    = 3
	usernameMaxLen    = 50
	PasswordMinLen    = 8
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ReservedSlugs are static path segments under /threads/ that a channel slug would be shadowed by.
var ReservedSlugs = map[string]struct{}{
	"create": {},
}

type ThreadValidator struct{}

func (v *ThreadValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.BadRequest("Title is required")
	}
	if utf8.RuneCountInString(title) > ThreadTitleMaxLen {
		return errors.BadRequest("Title is too long")
	}
	return nil
}

func (v *ThreadValidator) Body(body string) error {
	return text(body)
}

type ReplyValidator struct{}

func (v *ReplyValidator) Body(body string) error {
	return text(body)
}

func text(body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.BadRequest("Text is too short")
	}
	if utf8.RuneCountInString(body) > TextMaxLen {
		return errors.BadRequest("Text is too long")
	}
	return nil
}

type ChannelValidator struct{}

func (v *ChannelValidator) Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.BadRequest("Channel name is required")
	}
	if utf8.RuneCountInString(name) > channelNameMaxLen {
		return errors.BadRequest("Channel name is too long")
	}
	return nil
}

func (v *ChannelValidator) Slug(slug string) error {
	if len(slug) > channelSlugMaxLen {
		return errors.BadRequest("Slug is too long")
	}
	if !slugRegex.MatchString(slug) {
		return errors.BadRequest("Slug should contain only lower-case letters, digits and dashes")
	}
	if _, ok := ReservedSlugs[slug]; ok {
		return errors.BadRequest("Slug is reserved")
	}
	return nil
}

type UserValidator struct{}

func (v *UserValidator) Username(username string) error {
	n := utf8.RuneCountInString(username)
	if n < usernameMinLen || n > usernameMaxLen {
		return errors.BadRequest("Username should be 3 to 50 characters long")
	}
	if !usernameRegex.MatchString(username) {
		return errors.BadRequest("Username should contain only letters, digits and underscores")
	}
	return nil
}

func (v *UserValidator) Password(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return errors.BadRequest("Password is too short")
	}
	return nil
}
