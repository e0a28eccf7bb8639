package notif

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"dashnotify/internal/common"
	"dashnotify/internal/config"

	"github.com/gorilla/mux"
)

// TokenRegistrar stores a browser-minted token for a user.
type TokenRegistrar interface {
	Register(ctx context.Context, userID, token string) error
}

// HTTPHandler exposes registration, the local feed and sending over HTTP.
type HTTPHandler struct {
	config    *config.Config
	registrar TokenRegistrar
	feed      *Feed
	sender    common.PushSender
}

func NewHTTPHandler(
	cfg *config.Config,
	registrar TokenRegistrar,
	feed *Feed,
	sender common.PushSender,
) *HTTPHandler {
	return &HTTPHandler{
		config:    cfg,
		registrar: registrar,
		feed:      feed,
		sender:    sender,
	}
}

type registerDeviceRequest struct {
	Token string `json:"token"`
}

type sendNotificationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Image  string `json:"image"`
	Link   string `json:"link"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *HTTPHandler) Routes(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/devices", h.registerDevice).Methods(http.MethodPost)
	api.HandleFunc("/notifications/feed", h.listFeed).Methods(http.MethodGet)
	api.HandleFunc("/notifications/feed", h.clearFeed).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/send", h.sendNotification).Methods(http.MethodPost)
	api.HandleFunc("/push/config", h.pushConfig).Methods(http.MethodGet)
}

func (h *HTTPHandler) registerDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Message: "authentication required"})
		return
	}

	//decode body
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "token is required"})
		return
	}

	if err := h.registrar.Register(r.Context(), userID, req.Token); err != nil {
		log.Printf("Failed to register device: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrMessagingUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, response{Message: "failed to register device"})
		return
	}

	writeJSON(w, http.StatusCreated, response{Success: true, Message: "Device registered successfully"})
}

func (h *HTTPHandler) listFeed(w http.ResponseWriter, r *http.Request) {
	entries := h.feed.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": entries,
		"total_count":   len(entries),
	})
}

func (h *HTTPHandler) clearFeed(w http.ResponseWriter, r *http.Request) {
	h.feed.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) sendNotification(w http.ResponseWriter, r *http.Request) {
	// only signed-in dashboard staff may push to other users
	senderID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Message: "authentication required"})
		return
	}

	if h.sender == nil {
		writeJSON(w, http.StatusServiceUnavailable, response{Message: "push sending is disabled"})
		return
	}

	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Message: "invalid request body"})
		return
	}
	if req.UserID == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "user_id and title are required"})
		return
	}

	// build the same payload shape the browser sdk receives
	payload := common.PushPayload{
		Notification: &common.MessageNotification{
			Title: req.Title,
			Body:  req.Body,
			Image: req.Image,
		},
	}
	if req.Link != "" {
		payload.Data = map[string]string{"link": req.Link}
	}

	log.Printf("push requested by %s for user %s", senderID, req.UserID)
	result, err := h.sender.SendToUser(r.Context(), req.UserID, payload)
	if err != nil {
		log.Printf("Failed to send notification: %v", err)
		writeJSON(w, http.StatusBadGateway, response{Message: "failed to send notification"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

func (h *HTTPHandler) pushConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.config.Firebase)
}

func (h *HTTPHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "dashnotify",
		"timestamp": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
