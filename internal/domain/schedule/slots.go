package schedule

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

var ErrInvalidDuration = httperr.ErrBusiness("invalid_duration")

// GenerateSlots devolve os horários candidatos do dia, encostados um no
// outro (passo = duração), de open até close-duration, pulando os que
// tocam a pausa. Dia inativo devolve lista vazia.
func GenerateSlots(e WorkingHoursEntry, durationMin int) ([]Clock, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	slots := []Clock{}
	if !e.Active {
		return slots, nil
	}

	br, hasBreak := e.Break()

	for cur := e.Open; cur.Add(durationMin) <= e.Close; cur = cur.Add(durationMin) {
		slot := Interval{Start: cur, End: cur.Add(durationMin)}

		// almoço
		if hasBreak && slot.Overlaps(br) {
			continue
		}

		slots = append(slots, cur)
	}

	return slots, nil
}
