package handler

import (
	"errors"
	"net/http"

	"github.com/edvin/customer-api/internal/api/response"
	"github.com/edvin/customer-api/internal/core"
)

// writeServiceError maps customer service errors to HTTP status codes.
// Anything that is not a known error kind is a store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrNoSuchElement):
		response.WriteError(w, http.StatusNotFound, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
