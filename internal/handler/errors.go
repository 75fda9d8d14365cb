package handler

import (
	"errors"
	"net/http"

	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body so internal
// detail never reaches the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrTokenReuse):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}
