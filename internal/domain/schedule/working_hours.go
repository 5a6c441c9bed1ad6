package schedule

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var ErrInvalidWorkingHours = httperr.ErrBusiness("invalid_working_hours")

// WorkingHoursEntry é o expediente de um dia da semana.
// Pausa é opcional: BreakStart e BreakEnd vêm juntos ou não vêm.
type WorkingHoursEntry struct {
	Weekday    time.Weekday
	Active     bool
	Open       Clock
	Close      Clock
	BreakStart *Clock
	BreakEnd   *Clock
}

func (e WorkingHoursEntry) HasBreak() bool {
	return e.BreakStart != nil && e.BreakEnd != nil
}

func (e WorkingHoursEntry) Break() (Interval, bool) {
	if !e.HasBreak() {
		return Interval{}, false
	}
	return Interval{Start: *e.BreakStart, End: *e.BreakEnd}, true
}

// Validate: dia ativo exige open < close; pausa exige
// start < end e janela contida em [open, close].
func (e WorkingHoursEntry) Validate() error {
	if e.Weekday < time.Sunday || e.Weekday > time.Saturday {
		return ErrInvalidWorkingHours
	}
	if (e.BreakStart == nil) != (e.BreakEnd == nil) {
		return ErrInvalidWorkingHours
	}
	if !e.Active {
		return nil
	}
	if e.Open < 0 || e.Close > minutesPerDay || e.Open >= e.Close {
		return ErrInvalidWorkingHours
	}
	if br, ok := e.Break(); ok {
		if br.Start >= br.End || br.Start < e.Open || br.End > e.Close {
			return ErrInvalidWorkingHours
		}
	}
	return nil
}

// Fits diz se [start, start+duration) cabe no expediente sem tocar a pausa.
func (e WorkingHoursEntry) Fits(start Clock, durationMin int) bool {
	if !e.Active || durationMin <= 0 {
		return false
	}
	slot := Interval{Start: start, End: start.Add(durationMin)}
	if slot.Start < e.Open || slot.End > e.Close {
		return false
	}
	if br, ok := e.Break(); ok && slot.Overlaps(br) {
		return false
	}
	return true
}

// ======================================================
// WorkingHoursCatalog
// ======================================================

type WorkingHoursCatalog interface {
	WorkingHours(weekday time.Weekday) WorkingHoursEntry
}

// WeeklyHours é o catálogo em memória, indexado por dia da semana.
// Dias sem configuração ficam fechados.
type WeeklyHours [7]WorkingHoursEntry

func NewWeeklyHours(entries []WorkingHoursEntry) (WeeklyHours, error) {
	var w WeeklyHours
	for d := range w {
		w[d] = WorkingHoursEntry{Weekday: time.Weekday(d)}
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return WeeklyHours{}, err
		}
		w[e.Weekday] = e
	}
	return w, nil
}

func (w WeeklyHours) WorkingHours(weekday time.Weekday) WorkingHoursEntry {
	if weekday < time.Sunday || weekday > time.Saturday {
		return WorkingHoursEntry{Weekday: weekday}
	}
	return w[weekday]
}

func (w WeeklyHours) WorkingHoursOn(date time.Time) WorkingHoursEntry {
	return w.WorkingHours(date.Weekday())
}

// DayCatalog resolve o expediente de uma data concreta.
type DayCatalog interface {
	WorkingHoursOn(date time.Time) WorkingHoursEntry
}

// Calendar aplica fechamentos de dia inteiro (feriado, folga) sobre o
// expediente semanal.
type Calendar struct {
	weekly WorkingHoursCatalog
	closed map[string]struct{}
}

func NewCalendar(weekly WorkingHoursCatalog, closedDates []string) Calendar {
	closed := make(map[string]struct{}, len(closedDates))
	for _, d := range closedDates {
		closed[d] = struct{}{}
	}
	return Calendar{weekly: weekly, closed: closed}
}

func (c Calendar) WorkingHoursOn(date time.Time) WorkingHoursEntry {
	e := c.weekly.WorkingHours(date.Weekday())
	if _, ok := c.closed[FormatDate(date)]; ok {
		e.Active = false
	}
	return e
}
