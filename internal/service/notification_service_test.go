package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriptionRepo is an in-memory SubscriptionRepository
type fakeSubscriptionRepo struct {
	subs    map[uuid.UUID]*domain.PushSubscription
	listErr error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*domain.PushSubscription)}
}

func (r *fakeSubscriptionRepo) add(userID uuid.UUID, endpoint string) *domain.PushSubscription {
	sub := &domain.PushSubscription{
		ID:       uuid.New(),
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   "p256dh",
		Auth:     "auth",
	}
	r.subs[sub.ID] = sub
	return sub
}

func (r *fakeSubscriptionRepo) Upsert(ctx context.Context, sub *domain.PushSubscription) error {
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PushSubscription, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.PushSubscription
	for _, sub := range r.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FirstByUser(ctx context.Context, userID uuid.UUID) (*domain.PushSubscription, error) {
	subs, _ := r.ListByUser(ctx, userID)
	if len(subs) == 0 {
		return nil, domain.ErrSubscriptionNotFound
	}
	return subs[0], nil
}

func (r *fakeSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	for id, sub := range r.subs {
		if sub.UserID == userID {
			delete(r.subs, id)
		}
	}
	return nil
}

// fakeTransport records sends and answers with a fixed status per endpoint
type fakeTransport struct {
	statuses map[string]int // endpoint -> status, defaults to 201
	err      error
	sent     []string // endpoints in delivery order
	payloads [][]byte
}

func (t *fakeTransport) Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) (int, error) {
	if t.err != nil {
		return 0, t.err
	}
	t.sent = append(t.sent, sub.Endpoint)
	t.payloads = append(t.payloads, payload)
	if status, ok := t.statuses[sub.Endpoint]; ok {
		return status, nil
	}
	return 201, nil
}

func TestSendNoSubscriptionsIsNoOp(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	transport := &fakeTransport{}
	svc := NewNotificationService(repo, transport)

	err := svc.Send(context.Background(), uuid.New(), "Lembrete", "body", nil)
	require.NoError(t, err)
	assert.Empty(t, transport.sent)
}

func TestSendDeliversToAllSubscriptions(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	userID := uuid.New()
	repo.add(userID, "https://push.example.com/a")
	repo.add(userID, "https://push.example.com/b")
	repo.add(uuid.New(), "https://push.example.com/other-user")

	transport := &fakeTransport{}
	svc := NewNotificationService(repo, transport)

	err := svc.Send(context.Background(), userID, "Lembrete", "body", nil)
	require.NoError(t, err)
	assert.Len(t, transport.sent, 2)
	assert.NotContains(t, transport.sent, "https://push.example.com/other-user")
}

func TestSendPrunesGoneSubscriptions(t *testing.T) {
	for _, status := range []int{400, 401, 404, 410} {
		repo := newFakeSubscriptionRepo()
		userID := uuid.New()
		gone := repo.add(userID, "https://push.example.com/gone")
		kept := repo.add(userID, "https://push.example.com/kept")

		transport := &fakeTransport{statuses: map[string]int{gone.Endpoint: status}}
		svc := NewNotificationService(repo, transport)

		err := svc.Send(context.Background(), userID, "Lembrete", "body", nil)
		require.NoError(t, err, "status %d", status)

		_, exists := repo.subs[gone.ID]
		assert.False(t, exists, "status %d should prune the subscription", status)
		_, exists = repo.subs[kept.ID]
		assert.True(t, exists, "status %d pruned the wrong subscription", status)
	}
}

func TestSendKeepsSubscriptionOnTransientFailure(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	userID := uuid.New()
	sub := repo.add(userID, "https://push.example.com/busy")

	transport := &fakeTransport{statuses: map[string]int{sub.Endpoint: 503}}
	svc := NewNotificationService(repo, transport)

	err := svc.Send(context.Background(), userID, "Lembrete", "body", nil)
	require.NoError(t, err)

	_, exists := repo.subs[sub.ID]
	assert.True(t, exists, "transient failure must not prune the subscription")
}

func TestSendTransportErrorDoesNotAbortLoop(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	userID := uuid.New()
	sub := repo.add(userID, "https://push.example.com/unreachable")

	transport := &fakeTransport{err: errors.New("connection refused")}
	svc := NewNotificationService(repo, transport)

	err := svc.Send(context.Background(), userID, "Lembrete", "body", nil)
	require.NoError(t, err)

	_, exists := repo.subs[sub.ID]
	assert.True(t, exists)
}

func TestSendReturnsListError(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.listErr = errors.New("store down")
	svc := NewNotificationService(repo, &fakeTransport{})

	err := svc.Send(context.Background(), uuid.New(), "Lembrete", "body", nil)
	assert.Error(t, err)
}

func TestSendReminderNotificationPayload(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	userID := uuid.New()
	repo.add(userID, "https://push.example.com/a")

	transport := &fakeTransport{}
	svc := NewNotificationService(repo, transport)

	tod, err := domain.ParseTimeOfDay("14:30")
	require.NoError(t, err)
	reminder := &domain.Reminder{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Pagar aluguel",
		Description: "Transferência para o proprietário",
		DueDate:     time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC),
		TimeOfDay:   &tod,
	}

	require.NoError(t, svc.SendReminderNotification(context.Background(), reminder))
	require.Len(t, transport.payloads, 1)

	var payload struct {
		Title string            `json:"title"`
		Body  string            `json:"body"`
		Tag   string            `json:"tag"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(transport.payloads[0], &payload))

	assert.Equal(t, "Lembrete", payload.Title)
	assert.Equal(t, "Pagar aluguel - 14:30\nTransferência para o proprietário", payload.Body)
	assert.Equal(t, "lembrete-notification", payload.Tag)
	assert.Equal(t, reminder.ID.String(), payload.Data["lembreteId"])
	assert.Equal(t, "Pagar aluguel", payload.Data["nome"])
	assert.Equal(t, "2024-06-10", payload.Data["data"])
	assert.Equal(t, "14:30", payload.Data["horario"])
}

func TestSendReminderNotificationUntimedBody(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	userID := uuid.New()
	repo.add(userID, "https://push.example.com/a")

	transport := &fakeTransport{}
	svc := NewNotificationService(repo, transport)

	reminder := &domain.Reminder{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    "Consulta médica",
		DueDate: time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC),
	}

	require.NoError(t, svc.SendReminderNotification(context.Background(), reminder))
	require.Len(t, transport.payloads, 1)

	var payload struct {
		Body string            `json:"body"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(transport.payloads[0], &payload))
	assert.Equal(t, "Consulta médica", payload.Body)
	assert.Equal(t, "", payload.Data["horario"])
}
