package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/lucasrosa/lembretes-api/internal/push"
	"github.com/lucasrosa/lembretes-api/internal/repository"
)

// NotificationService fans one message out to every push subscription a
// user has. Per-subscription failures never abort the loop or reach the
// caller; subscriptions the push service reports as permanently invalid are
// pruned on the spot.
type NotificationService struct {
	subscriptionRepo repository.SubscriptionRepository
	transport        push.Transport
}

func NewNotificationService(subscriptionRepo repository.SubscriptionRepository, transport push.Transport) *NotificationService {
	return &NotificationService{
		subscriptionRepo: subscriptionRepo,
		transport:        transport,
	}
}

type notificationPayload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Icon  string      `json:"icon"`
	Badge string      `json:"badge"`
	Tag   string      `json:"tag"`
	Data  interface{} `json:"data"`
}

// subscriptionGone classifies push-service statuses after which the
// subscription will never work again. 400 and 401 cover endpoints created
// against a different VAPID keypair.
func subscriptionGone(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusGone:
		return true
	}
	return false
}

// Send delivers the message to all of the user's subscriptions. Having no
// subscriptions is a no-op, not an error. The returned error covers only
// failures before the delivery loop starts.
func (s *NotificationService) Send(ctx context.Context, userID uuid.UUID, title, body string, data interface{}) error {
	subs, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		log.Printf("no push subscriptions for user %s, skipping notification", userID)
		return nil
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	payload, err := json.Marshal(notificationPayload{
		Title: title,
		Body:  body,
		Icon:  "/icon-192x192.png",
		Badge: "/icon-192x192.png",
		Tag:   "lembrete-notification",
		Data:  data,
	})
	if err != nil {
		return err
	}

	for _, sub := range subs {
		status, err := s.transport.Send(ctx, sub, payload)
		if err != nil {
			log.Printf("ERROR [notification] push send failed for %s: %v", truncateEndpoint(sub.Endpoint), err)
			continue
		}
		if status < http.StatusBadRequest {
			continue
		}
		if subscriptionGone(status) {
			log.Printf("removing invalid subscription (status %d): %s", status, truncateEndpoint(sub.Endpoint))
			if err := s.subscriptionRepo.Delete(ctx, sub.ID); err != nil {
				log.Printf("ERROR [notification] failed to remove subscription %s: %v", sub.ID, err)
			}
		} else {
			log.Printf("WARN [notification] push send returned status %d for %s", status, truncateEndpoint(sub.Endpoint))
		}
	}
	return nil
}

// SendReminderNotification formats and sends the push message for a due
// reminder.
func (s *NotificationService) SendReminderNotification(ctx context.Context, reminder *domain.Reminder) error {
	body := reminder.Name
	var timeStr string
	if reminder.TimeOfDay != nil {
		timeStr = reminder.TimeOfDay.String()
		body = fmt.Sprintf("%s - %s", reminder.Name, timeStr)
	}
	if reminder.Description != "" {
		body += "\n" + reminder.Description
	}

	return s.Send(ctx, reminder.UserID, "Lembrete", body, map[string]interface{}{
		"lembreteId": reminder.ID.String(),
		"nome":       reminder.Name,
		"data":       reminder.DueDate.Format("2006-01-02"),
		"horario":    timeStr,
	})
}

func truncateEndpoint(endpoint string) string {
	if len(endpoint) > 50 {
		return endpoint[:50] + "..."
	}
	return endpoint
}
