package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

type AvailabilityInput struct {
	SalonID   uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotsFrom monta a resposta de disponibilidade a partir dos inícios livres
// do dia, descartando os que começam antes de earliest.
func SlotsFrom(free []schedule.Clock, durationMin int, date, earliest time.Time) []TimeSlot {
	out := make([]TimeSlot, 0, len(free))
	for _, start := range free {
		if start.On(date).Before(earliest) {
			continue
		}
		out = append(out, TimeSlot{
			Start: start.String(),
			End:   start.Add(durationMin).String(),
		})
	}
	return out
}
