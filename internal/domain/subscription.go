package domain

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription is a browser push endpoint plus its encryption keys.
// (UserID, Endpoint) is the natural key: subscribing again from the same
// browser updates the keys in place. Rows are removed on explicit
// unsubscribe or when the push service reports the endpoint as gone.
type PushSubscription struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"usuarioId" gorm:"type:uuid;not null;uniqueIndex:idx_push_subscriptions_user_endpoint"`
	Endpoint  string    `json:"endpoint" gorm:"not null;uniqueIndex:idx_push_subscriptions_user_endpoint"`
	P256dh    string    `json:"p256dh" gorm:"not null"`
	Auth      string    `json:"auth" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}
