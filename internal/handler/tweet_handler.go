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

type TweetHandler struct {
	tweetService *service.TweetService
	validator    *validator.Validate
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		validator:    validator.New(),
	}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, tweet, "Tweet created")
}

func (h *TweetHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.tweetService.ListForUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, list, "Tweets fetched")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tweet, err := h.tweetService.Update(r.Context(), mux.Vars(r)["tweetId"], middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, tweet, "Tweet updated")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tweetService.Delete(r.Context(), mux.Vars(r)["tweetId"], middleware.GetUserID(r)); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, nil, "Tweet deleted")
}
