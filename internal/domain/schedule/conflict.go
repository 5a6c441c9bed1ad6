package schedule

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start Clock
	End   Clock
}

// Overlaps: [a1,a2) e [b1,b2) conflitam sse a1 < b2 && a2 > b1.
// Horários encostados não conflitam.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Occupied é um agendamento já existente no dia.
type Occupied struct {
	AppointmentID uint
	Interval      Interval
	Cancelled     bool
}

// FilterAvailable mantém os candidatos que não colidem com nenhum
// agendamento não cancelado. A ordem de entrada é preservada.
func FilterAvailable(candidates []Clock, existing []Occupied, durationMin int) []Clock {
	out := make([]Clock, 0, len(candidates))
	if durationMin <= 0 {
		return out
	}
	for _, c := range candidates {
		if IsAvailable(c, durationMin, existing, 0) {
			out = append(out, c)
		}
	}
	return out
}

// IsAvailable valida um único horário. excludeID (quando != 0) ignora o
// próprio agendamento, usado na remarcação.
func IsAvailable(start Clock, durationMin int, existing []Occupied, excludeID uint) bool {
	if durationMin <= 0 {
		return false
	}
	want := Interval{Start: start, End: start.Add(durationMin)}
	for _, o := range existing {
		if o.Cancelled {
			continue
		}
		if excludeID != 0 && o.AppointmentID == excludeID {
			continue
		}
		if want.Overlaps(o.Interval) {
			return false
		}
	}
	return true
}
