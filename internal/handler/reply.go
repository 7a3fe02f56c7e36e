package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/logger"
	mw "github.com/agora-dev/agora/internal/middleware"
	"github.com/agora-dev/agora/internal/middleware/metrics"
	"github.com/agora-dev/agora/internal/utils"
	"github.com/agora-dev/agora/internal/validation"
)

// ReplyPostHandler adds a reply to the thread and sends the user back to it.
func (h *Handler) ReplyPostHandler(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Please sign-in"))
		return
	}

	thread, err := h.threadFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var form replyForm
	if err := utils.DecodeForm(r, &form); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.replies.Add(r.Context(), thread, domain.ReplyCreationData{Body: form.Body, UserId: user.Id})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RepliesCreated.Inc()
	logger.Log.Info("reply created", "replyId", reply.Id, "threadId", thread.Id, "userId", user.Id)

	http.Redirect(w, r, thread.Path(), http.StatusSeeOther)
}

// RepliesGetHandler renders one page of replies as an html fragment.
func (h *Handler) RepliesGetHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		var err error
		if page, err = strconv.Atoi(raw); err != nil {
			utils.WriteErrorAndStatusCode(w, errors.BadRequest("Page should be an integer"))
			return
		}
	}

	thread, err := h.threadFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	repliesPage, err := h.replies.Page(r.Context(), thread, viewerId(r), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.renderFragment(w, "replies.html", threadPageData{
		Thread:     thread,
		Page:       repliesPage,
		Viewer:     mw.GetUserFromContext(r),
		BodyMaxLen: validation.TextMaxLen,
	})
}

func (h *Handler) FavoritePostHandler(w http.ResponseWriter, r *http.Request) {
	h.toggleFavorite(w, r, h.replies.Favorite)
}

func (h *Handler) FavoriteDeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.toggleFavorite(w, r, h.replies.Unfavorite)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userId domain.UserId, replyId domain.ReplyId) error) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Please sign-in"))
		return
	}

	replyId, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, errors.BadRequest("Reply id should be an integer"))
		return
	}

	if err := action(r.Context(), user.Id, replyId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" || r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, safeRedirect(refererPath(r), "/threads/"), http.StatusSeeOther)
}

// refererPath keeps only the path and query of the Referer header.
func refererPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return ""
	}
	if ref.Host != "" && ref.Host != r.Host {
		return ""
	}
	return ref.RequestURI()
}
