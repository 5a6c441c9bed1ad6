package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Clock é um horário do dia em minutos desde a meia-noite.
type Clock int

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"

	minutesPerDay = 24 * 60
)

var ErrInvalidTime = httperr.ErrBusiness("invalid_time")

// ParseClock aceita apenas "HH:MM" (24h).
func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustClock(hm string) Clock {
	c, err := ParseClock(hm)
	if err != nil {
		panic(fmt.Sprintf("schedule: invalid clock %q", hm))
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// On posiciona o horário na data informada, no fuso da data.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		int(c)/60, int(c)%60, 0, 0,
		date.Location(),
	)
}

// ParseDate interpreta "YYYY-MM-DD" no fuso informado.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
