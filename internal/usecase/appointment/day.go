package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	ErrSalonNotFound       = httperr.ErrBusiness("salon_not_found")
	ErrServiceNotFound     = httperr.ErrBusiness("service_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")

	ErrInvalidDateOrTime   = httperr.ErrBusiness("invalid_date_or_time")
	ErrInvalidOrigin       = httperr.ErrBusiness("invalid_origin")
	ErrTooSoon             = httperr.ErrBusiness("too_soon")
	ErrOutsideWorkingHours = httperr.ErrBusiness("outside_working_hours")
	ErrTimeConflict        = httperr.ErrBusiness("time_conflict")
)

const defaultMinAdvanceMinutes = 120

// day é o retrato de uma data do salão: expediente efetivo (fechamentos
// aplicados) e ocupação, incluindo cancelados.
type day struct {
	date     time.Time
	hours    schedule.WorkingHoursEntry
	occupied []schedule.Occupied
}

func loadDay(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	date time.Time,
) (day, error) {

	key := schedule.FormatDate(date)
	next := schedule.FormatDate(date.AddDate(0, 0, 1))

	// só o dia da semana pedido; sem linha, o salão não abre
	var rows []models.WorkingHours
	wh, err := repo.GetWorkingHours(ctx, salonID, int(date.Weekday()))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return day{}, err
	default:
		rows = append(rows, *wh)
	}

	closures, err := repo.ListClosures(ctx, salonID, key, next)
	if err != nil {
		return day{}, err
	}
	cal, err := domain.CalendarFrom(rows, closures)
	if err != nil {
		return day{}, err
	}

	aps, err := repo.ListAppointmentsForDay(ctx, salonID, key)
	if err != nil {
		return day{}, err
	}
	occupied, err := domain.Occupancy(aps)
	if err != nil {
		return day{}, err
	}

	return day{
		date:     date,
		hours:    cal.WorkingHoursOn(date),
		occupied: occupied,
	}, nil
}

func loadSalon(ctx context.Context, repo domain.Repository, salonID uint) (*models.Salon, error) {
	salon, err := repo.GetSalonByID(ctx, salonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSalonNotFound
	}
	return salon, err
}

func loadAppointment(ctx context.Context, repo domain.Repository, salonID, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, salonID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return ap, err
}

func minAdvance(salon *models.Salon) time.Duration {
	m := salon.MinAdvanceMinutes
	if m <= 0 {
		m = defaultMinAdvanceMinutes
	}
	return time.Duration(m) * time.Minute
}

// parseDateTime interpreta data e hora no fuso do salão.
func parseDateTime(date, hm string, loc *time.Location) (time.Time, schedule.Clock, error) {
	d, err := schedule.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, 0, ErrInvalidDateOrTime
	}
	c, err := schedule.ParseClock(hm)
	if err != nil {
		return time.Time{}, 0, ErrInvalidDateOrTime
	}
	return d, c, nil
}

// conflictOrErr traduz a recusa do índice único para time_conflict.
func conflictOrErr(err error) error {
	if httperr.IsExclusionConflict(err) {
		return ErrTimeConflict
	}
	return err
}
