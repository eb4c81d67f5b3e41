package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/api/middleware"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/lucasrosa/lembretes-api/internal/repository"
	"github.com/lucasrosa/lembretes-api/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	subscriptionRepo    repository.SubscriptionRepository
}

func NewNotificationHandler(notificationService *service.NotificationService, subscriptionRepo repository.SubscriptionRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		subscriptionRepo:    subscriptionRepo,
	}
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type StatusResponse struct {
	Subscribed bool   `json:"subscribed"`
	Endpoint   string `json:"endpoint,omitempty"`
}

type TestNotificationRequest struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Data  interface{} `json:"data"`
}

func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		http.Error(w, "Endpoint and keys are required", http.StatusBadRequest)
		return
	}

	sub := &domain.PushSubscription{
		ID:        uuid.New(),
		UserID:    userID,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.subscriptionRepo.Upsert(r.Context(), sub); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Subscription registered"})
}

func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.subscriptionRepo.DeleteByUser(r.Context(), userID); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Subscription removed"})
}

func (h *NotificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sub, err := h.subscriptionRepo.FirstByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(StatusResponse{Subscribed: false})
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Subscribed: true, Endpoint: sub.Endpoint})
}

func (h *NotificationHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TestNotificationRequest
	if r.Body != nil {
		// Body is optional for test notifications
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if _, err := h.subscriptionRepo.FirstByUser(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			http.Error(w, "Enable notifications first", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	title := req.Title
	if title == "" {
		title = "Test notification"
	}
	body := req.Body
	if body == "" {
		body = "If you can see this, push notifications are working."
	}

	if err := h.notificationService.Send(r.Context(), userID, title, body, req.Data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Test notification sent",
		"title":   title,
		"body":    body,
	})
}
