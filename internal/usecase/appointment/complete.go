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

type CompleteAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Dispatcher
	now    func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *events.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
		now:    time.Now,
	}
}

func (uc *CompleteAppointment) Execute(
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
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// receita e fidelidade ficam com quem consome o evento
	uc.events.Dispatch(appointmentEvent(events.TypeAppointmentCompleted, ap, now))

	return ap, nil
}
