package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/response"
)

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// pathID parses the named UUID path variable.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case apperrors.ErrCodeValidation:
			response.BadRequest(w, message)
			return
		case apperrors.ErrCodeNotFound:
			response.NotFound(w, message)
			return
		case apperrors.ErrCodeConflict:
			response.Conflict(w, message)
			return
		}
	}

	response.InternalServerError(w, message)
}
