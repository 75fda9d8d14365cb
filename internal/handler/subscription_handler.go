package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/pkg/response"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.subscriptionService.Toggle(r.Context(), mux.Vars(r)["channelId"], middleware.GetUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	if result.State == domain.ToggleAdded {
		response.Created(w, result, "Subscribed")
		return
	}
	response.Success(w, result, "Unsubscribed")
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	list, err := h.subscriptionService.Subscribers(r.Context(), mux.Vars(r)["channelId"])
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, list, "Subscribers fetched")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	list, err := h.subscriptionService.SubscribedChannels(r.Context(), mux.Vars(r)["subscriberId"])
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, list, "Subscribed channels fetched")
}
