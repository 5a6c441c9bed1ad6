package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ToWorkingHoursEntry converte a linha persistida. Dia inativo vira dia
// fechado, sem olhar os horários; dia ativo precisa de horários válidos.
func ToWorkingHoursEntry(wh models.WorkingHours) (schedule.WorkingHoursEntry, error) {
	e := schedule.WorkingHoursEntry{
		Weekday: time.Weekday(wh.Weekday),
		Active:  wh.Active,
	}
	if !wh.Active {
		return e, e.Validate()
	}

	open, err := schedule.ParseClock(wh.StartTime)
	if err != nil {
		return e, schedule.ErrInvalidWorkingHours
	}
	closeAt, err := schedule.ParseClock(wh.EndTime)
	if err != nil {
		return e, schedule.ErrInvalidWorkingHours
	}
	e.Open = open
	e.Close = closeAt

	// almoço
	if wh.LunchStart != "" || wh.LunchEnd != "" {
		ls, err := schedule.ParseClock(wh.LunchStart)
		if err != nil {
			return e, schedule.ErrInvalidWorkingHours
		}
		le, err := schedule.ParseClock(wh.LunchEnd)
		if err != nil {
			return e, schedule.ErrInvalidWorkingHours
		}
		e.BreakStart = &ls
		e.BreakEnd = &le
	}

	return e, e.Validate()
}

// WeeklyHoursFrom monta o catálogo semanal a partir das linhas do salão.
func WeeklyHoursFrom(rows []models.WorkingHours) (schedule.WeeklyHours, error) {
	entries := make([]schedule.WorkingHoursEntry, 0, len(rows))
	for _, wh := range rows {
		e, err := ToWorkingHoursEntry(wh)
		if err != nil {
			return schedule.WeeklyHours{}, err
		}
		entries = append(entries, e)
	}
	return schedule.NewWeeklyHours(entries)
}

// CalendarFrom junta expediente semanal e fechamentos do salão.
func CalendarFrom(rows []models.WorkingHours, closures []models.SalonClosure) (schedule.Calendar, error) {
	weekly, err := WeeklyHoursFrom(rows)
	if err != nil {
		return schedule.Calendar{}, err
	}
	dates := make([]string, 0, len(closures))
	for _, c := range closures {
		dates = append(dates, c.Date)
	}
	return schedule.NewCalendar(weekly, dates), nil
}
