package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/api/middleware"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"github.com/lucasrosa/lembretes-api/internal/service"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type ReminderRequest struct {
	Nome        string `json:"nome"`
	Data        string `json:"data"`
	Horario     string `json:"horario"`
	Descricao   string `json:"descricao"`
	Categoria   string `json:"categoria"`
	Recorrencia string `json:"recorrencia"`
}

// ReminderResponse is mapped field by field from the entity; request bodies
// are never decoded into the persisted type.
type ReminderResponse struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	Descricao   string  `json:"descricao"`
	Categoria   string  `json:"categoria"`
	Data        string  `json:"data"`
	Horario     *string `json:"horario"`
	Recorrencia string  `json:"recorrencia"`
	Concluido   bool    `json:"concluido"`
	DataCriacao string  `json:"dataCriacao"`
	UsuarioID   string  `json:"usuarioId"`
}

func toReminderResponse(reminder *domain.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:          reminder.ID.String(),
		Nome:        reminder.Name,
		Descricao:   reminder.Description,
		Categoria:   reminder.Category,
		Data:        reminder.DueDate.UTC().Format(time.RFC3339),
		Recorrencia: reminder.Recurrence,
		Concluido:   reminder.Completed,
		DataCriacao: reminder.CreatedAt.UTC().Format(time.RFC3339),
		UsuarioID:   reminder.UserID.String(),
	}
	if reminder.TimeOfDay != nil {
		horario := reminder.TimeOfDay.String()
		resp.Horario = &horario
	}
	return resp
}

func toReminderResponses(reminders []*domain.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, toReminderResponse(reminder))
	}
	return out
}

// parseDate accepts a bare calendar date or a full RFC 3339 timestamp; any
// clock component is discarded downstream.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reminders, err := h.reminderService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toReminderResponses(reminders))
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Nome == "" || req.Data == "" {
		http.Error(w, "Name and date are required", http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Data)
	if err != nil {
		http.Error(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.reminderService.Create(r.Context(), userID, service.CreateReminderInput{
		Name:        req.Nome,
		Date:        date,
		RawTime:     req.Horario,
		Description: req.Descricao,
		Category:    req.Categoria,
		Recurrence:  req.Recorrencia,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeFormat) || errors.Is(err, domain.ErrInvalidRecurrence) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	// A single reminder is a resource creation; an expanded series is
	// returned as a batch.
	if len(created) == 1 {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toReminderResponse(created[0]))
		return
	}
	json.NewEncoder(w).Encode(toReminderResponses(created))
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Nome == "" || req.Data == "" {
		http.Error(w, "Name and date are required", http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Data)
	if err != nil {
		http.Error(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	updated, err := h.reminderService.Update(r.Context(), userID, id, service.UpdateReminderInput{
		Name:        req.Nome,
		Date:        date,
		RawTime:     req.Horario,
		Description: req.Descricao,
		Category:    req.Categoria,
	})
	if err != nil {
		h.writeReminderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toReminderResponse(updated))
}

func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, true)
}

func (h *ReminderHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, false)
}

func (h *ReminderHandler) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	updated, err := h.reminderService.SetCompleted(r.Context(), userID, id, completed)
	if err != nil {
		h.writeReminderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toReminderResponse(updated))
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	if err := h.reminderService.Delete(r.Context(), userID, id); err != nil {
		h.writeReminderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReminderHandler) writeReminderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrReminderNotFound):
		http.Error(w, "Reminder not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidTimeFormat), errors.Is(err, domain.ErrInvalidRecurrence):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
