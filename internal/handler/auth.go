package handler

import (
	"net/http"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/logger"
	mw "github.com/agora-dev/agora/internal/middleware"
	"github.com/agora-dev/agora/internal/utils"
	"github.com/agora-dev/agora/internal/validation"
)

const defaultRedirect = "/threads/"

type authPageData struct {
	Username       string
	Next           string
	PasswordMinLen int
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", authPageData{Next: r.URL.Query().Get("next")})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	var form credentialsForm
	if err := utils.DecodeForm(r, &form); err != nil {
		h.renderTemplateWithError(w, r, errors.StatusCode(err), "login.html", authPageData{Username: form.Username, Next: form.Next}, err.Error())
		return
	}

	token, err := h.auth.Login(r.Context(), domain.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		status := errors.StatusCode(err)
		if status == http.StatusInternalServerError {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		h.renderTemplateWithError(w, r, status, "login.html", authPageData{Username: form.Username, Next: form.Next}, err.Error())
		return
	}

	mw.SetAccessToken(w, token, h.Public.JwtTTL, h.Public.SecureCookies)
	http.Redirect(w, r, safeRedirect(form.Next, defaultRedirect), http.StatusSeeOther)
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", authPageData{PasswordMinLen: validation.PasswordMinLen})
}

// RegisterPostHandler creates the account and signs the new user in.
func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	var form credentialsForm
	renderErr := func(err error) {
		status := errors.StatusCode(err)
		if status == http.StatusInternalServerError {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		h.renderTemplateWithError(w, r, status, "register.html", authPageData{Username: form.Username, PasswordMinLen: validation.PasswordMinLen}, err.Error())
	}

	if err := utils.DecodeForm(r, &form); err != nil {
		renderErr(err)
		return
	}

	creds := domain.Credentials{Username: form.Username, Password: form.Password}
	user, err := h.auth.Register(r.Context(), creds)
	if err != nil {
		renderErr(err)
		return
	}

	token, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		renderErr(err)
		return
	}
	logger.Log.Info("user signed up", "userId", user.Id)

	mw.SetAccessToken(w, token, h.Public.JwtTTL, h.Public.SecureCookies)
	http.Redirect(w, r, defaultRedirect, http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	mw.ClearAccessToken(w, h.Public.SecureCookies)
	http.Redirect(w, r, defaultRedirect, http.StatusSeeOther)
}
