package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var ErrInvalidState = httperr.ErrBusiness("invalid_state")

// ===============================
// Origin
// ===============================

type Origin string

const (
	OriginManual            Origin = "manual"
	OriginRecurringTemplate Origin = "recurring-template"
	OriginOnlineBooking     Origin = "online-booking"
)

func (o Origin) Valid() bool {
	switch o {
	case OriginManual, OriginRecurringTemplate, OriginOnlineBooking:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

// CanReschedule: só agendamentos em aberto mudam de horário
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

// CanChangePayment: cancelado fica congelado para auditoria
func CanChangePayment(current Status) error {
	if current == StatusCancelled {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
