package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Current(r.Context(), middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, user, "Current user")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.userService.UpdateAccount(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, user, "Account updated")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.userService.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string, update func(ctx context.Context, userID, localPath string) (*domain.User, error)) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	path, err := saveFormFile(r, field)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := update(r.Context(), middleware.GetUserID(r), path)
	if err != nil {
		removeTempFiles(path)
		respondError(w, err)
		return
	}
	response.Success(w, user, "Image updated")
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	profile, err := h.userService.ChannelProfile(r.Context(), username, middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, profile, "Channel profile")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.userService.WatchHistory(r.Context(), middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, history, "Watch history")
}
