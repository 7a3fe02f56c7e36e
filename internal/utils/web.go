package utils

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/agora-dev/agora/internal/errors"
	"github.com/agora-dev/agora/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormBinder copies posted form values into a request struct.
type FormBinder interface {
	Bind(values url.Values) error
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status := errors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("internal error", "error", err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// DecodeForm binds the request form into body and validates its `validate` tags.
func DecodeForm(r *http.Request, body FormBinder) error {
	if err := r.ParseForm(); err != nil {
		logger.Log.Debug("failed to parse form", "error", err)
		return errors.BadRequest("Body is invalid form")
	}
	if err := body.Bind(r.PostForm); err != nil {
		return errors.BadRequest(err.Error())
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("form validation failed", "error", err)
		return errors.BadRequest("Required fields missing")
	}
	return nil
}
