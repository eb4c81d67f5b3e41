package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	timezone string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		timezone: "America/Sao_Paulo",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithTimezone sets the IANA timezone identifier
func (b *UserBuilder) WithTimezone(tz string) *UserBuilder {
	b.timezone = tz
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		Timezone:     b.timezone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Nome     string `json:"nome"`
		Email    string `json:"email"`
		Timezone string `json:"timezone"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"nome":     b.name,
		"email":    b.email,
		"senha":    b.password,
		"timezone": b.timezone,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Name:     authResp.User.Nome,
		Email:    authResp.User.Email,
		Timezone: authResp.User.Timezone,
	}

	return user, authResp.AccessToken
}

// ReminderBuilder creates test reminders with a builder pattern
type ReminderBuilder struct {
	userID      uuid.UUID
	name        string
	description string
	category    string
	dueDate     time.Time
	timeOfDay   *domain.TimeOfDay
	recurrence  string
	completed   bool
}

// NewReminderBuilder creates a new ReminderBuilder with default values
func NewReminderBuilder(userID uuid.UUID) *ReminderBuilder {
	return &ReminderBuilder{
		userID:  userID,
		name:    fmt.Sprintf("reminder_%s", uuid.New().String()[:8]),
		dueDate: time.Now().UTC().Truncate(time.Minute),
	}
}

func (b *ReminderBuilder) WithName(name string) *ReminderBuilder {
	b.name = name
	return b
}

func (b *ReminderBuilder) WithDescription(desc string) *ReminderBuilder {
	b.description = desc
	return b
}

func (b *ReminderBuilder) WithCategory(category string) *ReminderBuilder {
	b.category = category
	return b
}

// WithDueDate sets the UTC due instant
func (b *ReminderBuilder) WithDueDate(due time.Time) *ReminderBuilder {
	b.dueDate = due
	return b
}

// WithTimeOfDay sets the owner-local wall-clock time, e.g. "14:30"
func (b *ReminderBuilder) WithTimeOfDay(t *testing.T, value string) *ReminderBuilder {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(value)
	if err != nil {
		t.Fatalf("invalid time of day %q: %v", value, err)
	}
	b.timeOfDay = &tod
	return b
}

func (b *ReminderBuilder) WithRecurrence(rule string) *ReminderBuilder {
	b.recurrence = rule
	return b
}

func (b *ReminderBuilder) Completed() *ReminderBuilder {
	b.completed = true
	return b
}

// Build creates the reminder in the database
func (b *ReminderBuilder) Build(t *testing.T, db *gorm.DB) *domain.Reminder {
	t.Helper()

	reminder := &domain.Reminder{
		ID:          uuid.New(),
		UserID:      b.userID,
		Name:        b.name,
		Description: b.description,
		Category:    b.category,
		DueDate:     b.dueDate,
		TimeOfDay:   b.timeOfDay,
		Recurrence:  b.recurrence,
		Completed:   b.completed,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(reminder).Error; err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	return reminder
}

// SubscriptionBuilder creates test push subscriptions
type SubscriptionBuilder struct {
	userID   uuid.UUID
	endpoint string
	p256dh   string
	auth     string
}

// NewSubscriptionBuilder creates a new SubscriptionBuilder with default values
func NewSubscriptionBuilder(userID uuid.UUID) *SubscriptionBuilder {
	return &SubscriptionBuilder{
		userID:   userID,
		endpoint: fmt.Sprintf("https://push.example.com/%s", uuid.New().String()),
		p256dh:   "test-p256dh-key",
		auth:     "test-auth-secret",
	}
}

func (b *SubscriptionBuilder) WithEndpoint(endpoint string) *SubscriptionBuilder {
	b.endpoint = endpoint
	return b
}

// Build creates the subscription in the database
func (b *SubscriptionBuilder) Build(t *testing.T, db *gorm.DB) *domain.PushSubscription {
	t.Helper()

	sub := &domain.PushSubscription{
		ID:        uuid.New(),
		UserID:    b.userID,
		Endpoint:  b.endpoint,
		P256dh:    b.p256dh,
		Auth:      b.auth,
		CreatedAt: time.Now(),
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create push subscription: %v", err)
	}

	return sub
}
