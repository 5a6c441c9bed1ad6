package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	salonID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	from := schedule.FormatDate(date)
	to := schedule.FormatDate(date.AddDate(0, 0, 1))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		salonID,
		from,
		to,
	)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
