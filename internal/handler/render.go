package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/agora-dev/agora/internal/domain"
	"github.com/agora-dev/agora/internal/logger"
	mw "github.com/agora-dev/agora/internal/middleware"
)

// CommonTemplateData holds fields every page template can use via .Common.
type CommonTemplateData struct {
	Error string
	User  *domain.User
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(r *http.Request) CommonTemplateData {
	return CommonTemplateData{User: mw.GetUserFromContext(r)}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, http.StatusOK, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, status int, name string, data any, errMsg string) {
	common := h.initCommonTemplateData(r)
	common.Error = errMsg
	h.execute(w, status, name, TemplateData{Data: data, Common: common})
}

// renderFragment renders a template that has no page layout.
func (h *Handler) renderFragment(w http.ResponseWriter, name string, data any) {
	h.execute(w, http.StatusOK, name, data)
}

func (h *Handler) execute(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// viewerId is zero for anonymous requests.
func viewerId(r *http.Request) domain.UserId {
	if user := mw.GetUserFromContext(r); user != nil {
		return user.Id
	}
	return 0
}
