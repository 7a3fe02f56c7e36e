package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/utils"
)

func (h *Handler) ProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var templateData struct {
		Profile domain.Profile
	}
	templateData.Profile = profile
	h.renderTemplate(w, r, "profile.html", templateData)
}
