package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeKindVideo, mux.Vars(r)["videoId"])
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeKindComment, mux.Vars(r)["commentId"])
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeKindTweet, mux.Vars(r)["tweetId"])
}

// toggle answers 201 when the like was added and 200 when removed.
func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind domain.LikeKind, targetID string) {
	result, err := h.likeService.Toggle(r.Context(), kind, targetID, middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	if result.State == domain.ToggleAdded {
		response.Created(w, result, "Like added")
		return
	}
	response.Success(w, result, "Like removed")
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	likes, err := h.likeService.LikedVideos(r.Context(), middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, likes, "Liked videos fetched")
}
