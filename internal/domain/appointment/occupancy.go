package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Occupancy converte os agendamentos do dia no formato do detector de
// conflitos. Cancelados vão marcados e são ignorados na checagem.
func Occupancy(aps []models.Appointment) ([]schedule.Occupied, error) {
	out := make([]schedule.Occupied, 0, len(aps))
	for _, ap := range aps {
		start, err := schedule.ParseClock(ap.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: start time %q: %w", ap.ID, ap.StartTime, err)
		}
		out = append(out, schedule.Occupied{
			AppointmentID: ap.ID,
			Interval: schedule.Interval{
				Start: start,
				End:   start.Add(ap.DurationMin),
			},
			Cancelled: Status(ap.Status) == StatusCancelled,
		})
	}
	return out, nil
}

// OccupancyOn filtra por data antes de converter.
func OccupancyOn(aps []models.Appointment, date string) ([]schedule.Occupied, error) {
	var day []models.Appointment
	for _, ap := range aps {
		if ap.Date == date {
			day = append(day, ap)
		}
	}
	return Occupancy(day)
}
