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

type CommentHandler struct {
	commentService *service.CommentService
	validator      *validator.Validate
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Add(r.Context(), mux.Vars(r)["videoId"], middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, comment, "Comment added")
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	comments, err := h.commentService.ListForVideo(r.Context(), mux.Vars(r)["videoId"], parseInt64(q.Get("page")), parseInt64(q.Get("limit")))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, comments, "Comments fetched")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Update(r.Context(), mux.Vars(r)["commentId"], middleware.GetUserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, comment, "Comment updated")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.commentService.Delete(r.Context(), mux.Vars(r)["commentId"], middleware.GetUserID(r)); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, nil, "Comment deleted")
}
