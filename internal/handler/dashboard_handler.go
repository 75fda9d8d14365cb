package handler

import (
	"net/http"

	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

// DashboardHandler serves the authenticated user's own channel
// dashboard; the channel id always comes from the session.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.ChannelStats(r.Context(), middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, stats, "Channel stats fetched")
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.dashboardService.ChannelVideos(r.Context(), middleware.GetUserID(r), parseInt64(q.Get("page")), parseInt64(q.Get("limit")))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, page, "Channel videos fetched")
}
