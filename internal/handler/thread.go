package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	mw "github.com/agora-dev/agora/internal/middleware"
	"github.com/agora-dev/agora/internal/middleware/metrics"
	"github.com/agora-dev/agora/internal/utils"
	"github.com/agora-dev/agora/internal/validation"
)

type threadPageData struct {
	Thread     *domain.Thread
	Page       domain.RepliesPage
	Viewer     *domain.User
	BodyMaxLen int
}

type createThreadData struct {
	Channels    []domain.Channel
	Form        threadForm
	TitleMaxLen int
	BodyMaxLen  int
}

// ThreadsGetHandler lists threads, optionally narrowed to a channel and/or author
// and ordered by popularity.
func (h *Handler) ThreadsGetHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ThreadFilter{
		Channel: query.Get("channel"),
		By:      query.Get("by"),
		Popular: isPopular(query.Get("popular")),
	}
	if slug := chi.URLParam(r, "channel"); slug != "" {
		filter.Channel = slug
	}

	threads, err := h.threads.List(r.Context(), filter)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var templateData struct {
		Threads []*domain.Thread
		Filter  domain.ThreadFilter
	}
	templateData.Threads = threads
	templateData.Filter = filter

	h.renderTemplate(w, r, "threads.html", templateData)
}

func (h *Handler) ThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threadFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.replies.Page(r.Context(), thread, viewerId(r), 1)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.renderTemplate(w, r, "thread.html", threadPageData{
		Thread:     thread,
		Page:       page,
		Viewer:     mw.GetUserFromContext(r),
		BodyMaxLen: validation.TextMaxLen,
	})
}

func (h *Handler) ThreadCreateGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderCreateThread(w, r, http.StatusOK, threadForm{}, "")
}

func (h *Handler) ThreadPostHandler(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Please sign-in"))
		return
	}

	var form threadForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.renderCreateThread(w, r, errors.StatusCode(err), form, err.Error())
		return
	}

	thread, err := h.threads.Create(r.Context(), domain.ThreadCreationData{
		Title:     form.Title,
		Body:      form.Body,
		UserId:    user.Id,
		ChannelId: form.ChannelId,
	})
	if err != nil {
		status := errors.StatusCode(err)
		if status == http.StatusInternalServerError {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		h.renderCreateThread(w, r, status, form, err.Error())
		return
	}
	metrics.ThreadsCreated.Inc()

	http.Redirect(w, r, thread.Path(), http.StatusSeeOther)
}

func (h *Handler) renderCreateThread(w http.ResponseWriter, r *http.Request, status int, form threadForm, errMsg string) {
	channels, err := h.channels.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.renderTemplateWithError(w, r, status, "create.html", createThreadData{
		Channels:    channels,
		Form:        form,
		TitleMaxLen: validation.ThreadTitleMaxLen,
		BodyMaxLen:  validation.TextMaxLen,
	}, errMsg)
}

// threadFromPath loads the thread addressed by /threads/{channel}/{id}.
func (h *Handler) threadFromPath(r *http.Request) (*domain.Thread, error) {
	id, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		return nil, errors.BadRequest("Thread id should be an integer")
	}
	return h.threads.Get(r.Context(), chi.URLParam(r, "channel"), id)
}
