package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	SalonID       uint
	UserID        *uint
	AppointmentID uint
	Date          string
	Time          string
}

type RescheduleAppointment struct {
	repo   domain.Repository
	locker lock.DayLocker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	locker lock.DayLocker,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	if locker == nil {
		locker = lock.NopDayLocker{}
	}
	return &RescheduleAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	salon, err := loadSalon(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.repo, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	date, start, err := parseDateTime(in.Date, in.Time, loc)
	if err != nil {
		return nil, err
	}
	if start.On(date).Before(uc.now().In(loc)) {
		return nil, ErrTooSoon
	}

	release, err := uc.locker.Acquire(ctx, in.SalonID, in.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	d, err := loadDay(ctx, uc.repo, in.SalonID, date)
	if err != nil {
		return nil, err
	}
	if !d.hours.Fits(start, ap.DurationMin) {
		return nil, ErrOutsideWorkingHours
	}
	// o próprio agendamento não conflita com ele mesmo
	if !schedule.IsAvailable(start, ap.DurationMin, d.occupied, ap.ID) {
		return nil, ErrTimeConflict
	}

	from := ap.Date + " " + ap.StartTime
	if err := domain.Reschedule(ap, date, start); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, conflictOrErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Date + " " + ap.StartTime,
		},
	})

	return ap, nil
}
