package domain

import (
	"time"

	"github.com/google/uuid"
)

// User's Timezone holds an IANA identifier detected by the web client.
// Conversions fall back to America/Sao_Paulo when it is unset or invalid.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"nome" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Timezone     string    `json:"timezone" gorm:"not null;default:'America/Sao_Paulo'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
