package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type ReminderRepository interface {
	CreateBatch(ctx context.Context, reminders []*domain.Reminder) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error)
	// ListIncomplete returns every incomplete reminder across all users with
	// the owner preloaded, for the notification scanner.
	ListIncomplete(ctx context.Context) ([]*domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// Ping probes store connectivity so the scanner can skip a pass instead
	// of failing mid-iteration during an outage.
	Ping(ctx context.Context) error
}

type SubscriptionRepository interface {
	// Upsert creates the subscription or, when (user, endpoint) already
	// exists, refreshes its keys in place.
	Upsert(ctx context.Context, sub *domain.PushSubscription) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PushSubscription, error)
	FirstByUser(ctx context.Context, userID uuid.UUID) (*domain.PushSubscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Reminder     ReminderRepository
	Subscription SubscriptionRepository
}
