package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Dispatcher
	now    func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *events.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := loadSalon(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.repo, salonID, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(salon.Timezone))
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.events.Dispatch(appointmentEvent(events.TypeAppointmentCancelled, ap, now))

	return ap, nil
}

func appointmentEvent(eventType string, ap *models.Appointment, at time.Time) events.Event {
	ev := events.New(eventType, ap.SalonID, at)
	ev.AppointmentID = ap.ID
	ev.ClientID = ap.ClientID
	ev.Total = ap.Total
	ev.Paid = ap.Paid
	if ap.RecurringTemplateID != nil {
		ev.TemplateID = *ap.RecurringTemplateID
	}
	return ev
}
