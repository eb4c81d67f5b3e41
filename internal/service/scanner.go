package service

import (
	"context"
	"log"
	"time"

	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/lucasrosa/lembretes-api/internal/repository"
	"github.com/lucasrosa/lembretes-api/internal/timezone"
)

// dueWindowMinutes is how far ahead, in minutes, a timed reminder counts as
// due. The scan period doubles as the retry interval, so the window must be
// at least as long as the period to avoid missed reminders.
const dueWindowMinutes = 5

// Scanner is the background loop that checks every incomplete reminder once
// per interval and dispatches push notifications for the due ones. It is
// best-effort: no pass error ever escapes Run, and a store outage just
// skips passes until the store is back.
type Scanner struct {
	reminderRepo repository.ReminderRepository
	notifier     *NotificationService
	interval     time.Duration
}

func NewScanner(reminderRepo repository.ReminderRepository, notifier *NotificationService, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scanner{
		reminderRepo: reminderRepo,
		notifier:     notifier,
		interval:     interval,
	}
}

// Run loops until ctx is cancelled. An in-flight pass is never interrupted;
// cancellation takes effect at the delay between passes.
func (s *Scanner) Run(ctx context.Context) {
	log.Println("reminder notification scanner started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.scan(ctx)

		select {
		case <-ctx.Done():
			log.Println("reminder notification scanner stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Scanner) scan(ctx context.Context) {
	if err := s.reminderRepo.Ping(ctx); err != nil {
		log.Printf("WARN [scanner] store unreachable, skipping pass: %v", err)
		return
	}

	reminders, err := s.reminderRepo.ListIncomplete(ctx)
	if err != nil {
		log.Printf("WARN [scanner] failed to load reminders: %v", err)
		return
	}

	nowUTC := time.Now().UTC()
	for _, reminder := range reminders {
		zone := timezone.DefaultZone
		if reminder.User != nil && reminder.User.Timezone != "" {
			zone = reminder.User.Timezone
		}

		if !IsDue(reminder, nowUTC, zone) {
			continue
		}

		if err := s.notifier.SendReminderNotification(ctx, reminder); err != nil {
			log.Printf("ERROR [scanner] failed to notify reminder %s: %v", reminder.ID, err)
			continue
		}
		log.Printf("notification sent for reminder %s - %s (timezone: %s)", reminder.ID, reminder.Name, zone)
	}
}

// IsDue reports whether the reminder should be notified at instant nowUTC,
// evaluated in the owner's zone. A timed reminder is due when its local due
// instant lies between now and dueWindowMinutes ahead, boundaries included.
// An untimed reminder is due for the whole of its local calendar day; with
// no per-reminder notified marker it re-fires on every pass of that day
// (at-least-once delivery).
func IsDue(reminder *domain.Reminder, nowUTC time.Time, zone string) bool {
	dueLocal := timezone.FromUTC(reminder.DueDate, zone)
	nowLocal := timezone.FromUTC(nowUTC, zone)

	if tod := reminder.TimeOfDay; tod != nil {
		dueAt := time.Date(dueLocal.Year(), dueLocal.Month(), dueLocal.Day(),
			tod.Hour, tod.Minute, tod.Second, 0, nowLocal.Location())
		delta := dueAt.Sub(nowLocal).Minutes()
		return delta >= 0 && delta <= dueWindowMinutes
	}

	dueYear, dueMonth, dueDay := dueLocal.Date()
	nowYear, nowMonth, nowDay := nowLocal.Date()
	return dueYear == nowYear && dueMonth == nowMonth && dueDay == nowDay
}
