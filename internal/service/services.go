package service

import (
	"github.com/lucasrosa/lembretes-api/internal/config"
	"github.com/lucasrosa/lembretes-api/internal/push"
	"github.com/lucasrosa/lembretes-api/internal/repository"
)

type Services struct {
	Auth         *AuthService
	Reminder     *ReminderService
	Notification *NotificationService
}

func NewServices(repos *repository.Repositories, transport push.Transport, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, repos.Session, cfg),
		Reminder:     NewReminderService(repos.Reminder, repos.User),
		Notification: NewNotificationService(repos.Subscription, transport),
	}
}
