package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence values accepted on reminder creation. They are the wire values
// the web client submits. A recurrence drives expansion at creation time
// only; the stored value is informational afterwards.
const (
	RecurrenceDaily   = "diario"
	RecurrenceWeekly  = "semanal"
	RecurrenceMonthly = "mensal"
	RecurrenceYearly  = "anual"
)

// Reminder is a single dated task owned by a user. DueDate holds the
// canonical UTC instant; when TimeOfDay is set it is the authoritative
// wall-clock time in the owner's timezone and DueDate's clock component is
// informational only. Rows produced by recurrence expansion are independent;
// no series link is kept.
type Reminder struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `json:"usuarioId" gorm:"type:uuid;not null;index"`
	Name        string     `json:"nome" gorm:"not null"`
	Description string     `json:"descricao"`
	Category    string     `json:"categoria"`
	DueDate     time.Time  `json:"data" gorm:"not null;index"`
	TimeOfDay   *TimeOfDay `json:"horario" gorm:"type:time"`
	Recurrence  string     `json:"recorrencia"`
	Completed   bool       `json:"concluido" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"dataCriacao"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}
