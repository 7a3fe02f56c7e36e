package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/agora-dev/agora/internal/domain"
)

type threadForm struct {
	Title     string           `validate:"required"`
	Body      string           `validate:"required"`
	ChannelId domain.ChannelId `validate:"required,gt=0"`
}

func (f *threadForm) Bind(values url.Values) error {
	f.Title = strings.TrimSpace(values.Get("title"))
	f.Body = values.Get("body")
	if channel := values.Get("channel"); channel != "" {
		id, err := strconv.ParseInt(channel, 10, 64)
		if err != nil {
			return fmt.Errorf("Channel must be an id")
		}
		f.ChannelId = id
	}
	return nil
}

type replyForm struct {
	Body string `validate:"required"`
}

func (f *replyForm) Bind(values url.Values) error {
	f.Body = values.Get("body")
	return nil
}

type credentialsForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Next     string
}

func (f *credentialsForm) Bind(values url.Values) error {
	f.Username = strings.TrimSpace(values.Get("username"))
	f.Password = values.Get("password")
	f.Next = values.Get("next")
	return nil
}

// isPopular treats any value except empty, "0" and "false" as enabled.
func isPopular(value string) bool {
	switch strings.ToLower(value) {
	case "", "0", "false":
		return false
	}
	return true
}

// safeRedirect only allows local paths so ?next= can't send users elsewhere.
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

func parseId(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
