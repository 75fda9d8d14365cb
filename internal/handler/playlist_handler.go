package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
	validator       *validator.Validate
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		validator:       validator.New(),
	}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, playlist, "Playlist created")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.playlistService.Get(r.Context(), mux.Vars(r)["playlistId"])
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, playlist, "Playlist fetched")
}

func (h *PlaylistHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlistService.ListForUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, playlists, "Playlists fetched")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), mux.Vars(r)["playlistId"], middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, playlist, "Playlist updated")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.playlistService.Delete(r.Context(), mux.Vars(r)["playlistId"], middleware.GetUserID(r)); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, nil, "Playlist deleted")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlist, err := h.playlistService.AddVideo(r.Context(), vars["playlistId"], vars["videoId"], middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, playlist, "Video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlist, err := h.playlistService.RemoveVideo(r.Context(), vars["playlistId"], vars["videoId"], middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, playlist, "Video removed from playlist")
}
