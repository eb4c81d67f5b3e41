package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/lucasrosa/lembretes-api/internal/recurrence"
	"github.com/lucasrosa/lembretes-api/internal/repository"
	"github.com/lucasrosa/lembretes-api/internal/timezone"
	"gorm.io/gorm"
)

type ReminderService struct {
	reminderRepo repository.ReminderRepository
	userRepo     repository.UserRepository
}

func NewReminderService(reminderRepo repository.ReminderRepository, userRepo repository.UserRepository) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
	}
}

type CreateReminderInput struct {
	Name        string
	Date        time.Time // calendar date; any clock component is discarded
	RawTime     string    // optional "HH:mm" or "HH:mm:ss"
	Description string
	Category    string
	Recurrence  string
}

type UpdateReminderInput struct {
	Name        string
	Date        time.Time
	RawTime     string
	Description string
	Category    string
}

// Create persists one reminder, or the full expanded series when a
// recurrence rule is given. Each occurrence is normalized to UTC from the
// owner's timezone independently, so a series crossing a DST boundary keeps
// its wall-clock reading. The batch insert carries no transaction guarantee;
// a mid-batch failure can leave a partial series behind.
func (s *ReminderService) Create(ctx context.Context, userID uuid.UUID, input CreateReminderInput) ([]*domain.Reminder, error) {
	zone := s.userZone(ctx, userID)

	tod, err := parseOptionalTime(input.RawTime)
	if err != nil {
		return nil, err
	}

	anchor := recurrence.Anchor(input.Date, tod, timezone.Resolve(zone))
	occurrences, err := recurrence.Expand(anchor, tod, input.Recurrence)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reminders := make([]*domain.Reminder, 0, len(occurrences))
	for _, local := range occurrences {
		reminders = append(reminders, &domain.Reminder{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			DueDate:     local.UTC(),
			TimeOfDay:   tod,
			Recurrence:  input.Recurrence,
			CreatedAt:   now,
		})
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// Update rewrites the reminder's fields and recomputes its due instant from
// the submitted date and time. The recurrence rule is immutable after
// creation and a single row is touched; the rest of a series is unaffected.
func (s *ReminderService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateReminderInput) (*domain.Reminder, error) {
	reminder, err := s.get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	zone := s.userZone(ctx, userID)

	tod, err := parseOptionalTime(input.RawTime)
	if err != nil {
		return nil, err
	}

	anchor := recurrence.Anchor(input.Date, tod, timezone.Resolve(zone))

	reminder.Name = input.Name
	reminder.Description = input.Description
	reminder.Category = input.Category
	reminder.DueDate = anchor.UTC()
	reminder.TimeOfDay = tod

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (*domain.Reminder, error) {
	reminder, err := s.get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	reminder.Completed = completed
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.reminderRepo.Delete(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrReminderNotFound
	}
	return err
}

func (s *ReminderService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error) {
	return s.reminderRepo.ListByUser(ctx, userID)
}

func (s *ReminderService) get(ctx context.Context, id, userID uuid.UUID) (*domain.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

// userZone resolves the owner's timezone identifier, degrading to the
// default when the user row or its timezone is missing.
func (s *ReminderService) userZone(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.Timezone == "" {
		return timezone.DefaultZone
	}
	return user.Timezone
}

func parseOptionalTime(raw string) (*domain.TimeOfDay, error) {
	if raw == "" {
		return nil, nil
	}
	tod, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}
