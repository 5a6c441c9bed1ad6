package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos publicados para os colaboradores externos (financeiro, fidelidade,
// acompanhamento de retorno). appointment.completed é o gatilho para lançar
// receita e acumular pontos.
const (
	TypeAppointmentCompleted = "appointment.completed"
	TypeAppointmentCancelled = "appointment.cancelled"
	TypeRecurrenceExpanded   = "recurrence.expanded"
)

type Event struct {
	ID            string          `json:"event_id"`
	Type          string          `json:"event_type"`
	SalonID       uint            `json:"salon_id"`
	AppointmentID uint            `json:"appointment_id,omitempty"`
	ClientID      uint            `json:"client_id,omitempty"`
	TemplateID    uint            `json:"template_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Created       int             `json:"created,omitempty"`
	Requested     int             `json:"requested,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func New(eventType string, salonID uint, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		SalonID:    salonID,
		OccurredAt: at,
	}
}
