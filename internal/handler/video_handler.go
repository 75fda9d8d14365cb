package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type VideoHandler struct {
	videoService *service.VideoService
	validator    *validator.Validate
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		validator:    validator.New(),
	}
}

// Feed serves the public video listing. Query parameters: query,
// userId, sortBy, sortType (asc|desc), page, limit.
func (h *VideoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.VideoFeedOptions{
		Query:         q.Get("query"),
		OwnerID:       q.Get("userId"),
		PublishedOnly: true,
		SortBy:        q.Get("sortBy"),
		SortOrder:     domain.SortDescending,
		Page:          parseInt64(q.Get("page")),
		Limit:         parseInt64(q.Get("limit")),
	}
	if q.Get("sortType") == "asc" {
		opts.SortOrder = domain.SortAscending
	}

	page, err := h.videoService.Feed(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, page, "Videos fetched")
}

// Publish accepts multipart form data with videoFile and thumbnail
// parts plus title and description fields.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := domain.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	videoPath, err := saveFormFile(r, "videoFile")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	thumbnailPath, err := saveFormFile(r, "thumbnail")
	if err != nil {
		removeTempFiles(videoPath)
		response.BadRequest(w, err.Error())
		return
	}

	video, err := h.videoService.Publish(r.Context(), middleware.GetUserID(r), &req, videoPath, thumbnailPath)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, video, "Video published")
}

// Watch returns the video detail and records the view for the
// authenticated user.
func (h *VideoHandler) Watch(w http.ResponseWriter, r *http.Request) {
	detail, err := h.videoService.Watch(r.Context(), mux.Vars(r)["videoId"], middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, detail, "Video fetched")
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := domain.UpdateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	thumbnailPath, err := saveFormFile(r, "thumbnail")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	video, err := h.videoService.Update(r.Context(), mux.Vars(r)["videoId"], middleware.GetUserID(r), &req, thumbnailPath)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, video, "Video updated")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.videoService.Delete(r.Context(), mux.Vars(r)["videoId"], middleware.GetUserID(r)); err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, nil, "Video deleted")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	video, err := h.videoService.TogglePublish(r.Context(), mux.Vars(r)["videoId"], middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, video, "Publish state toggled")
}

// parseInt64 tolerates missing or malformed numbers; the service
// resolves zero to its defaults.
func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
