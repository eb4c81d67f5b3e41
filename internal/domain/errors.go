package domain

import "errors"

// Validation errors; their messages are surfaced to API callers as-is
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:mm")
	ErrInvalidRecurrence = errors.New("invalid recurrence, use diario, semanal, mensal or anual")
)

// Lookup errors
var (
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
