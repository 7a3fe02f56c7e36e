package handler

import (
	"net/http"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/utils"
)

func (h *Handler) ChannelsGetHandler(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channels.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var templateData struct {
		Channels []domain.Channel
	}
	templateData.Channels = channels
	h.renderTemplate(w, r, "channels.html", templateData)
}
