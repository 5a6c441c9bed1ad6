package recurrence

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var ErrInvalidTemplate = httperr.ErrBusiness("invalid_template")

// ===============================
// Cadence
// ===============================

type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// IntervalDays: mensal é fixo em 30 dias.
func (c Cadence) IntervalDays() (int, bool) {
	switch c {
	case CadenceWeekly:
		return 7, true
	case CadenceBiweekly:
		return 14, true
	case CadenceMonthly:
		return 30, true
	}
	return 0, false
}

// ===============================
// Pending Return Status
// ===============================

type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnDone      ReturnStatus = "done"
	ReturnCancelled ReturnStatus = "cancelled"
)

// CanResolveReturn: retorno só sai de pending.
func CanResolveReturn(current, next ReturnStatus) error {
	if current != ReturnPending {
		return httperr.ErrBusiness("invalid_state")
	}
	if next != ReturnDone && next != ReturnCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Template
// ===============================

// Template é a forma já validada do cronograma.
type Template struct {
	ID        uint
	SalonID   uint
	ClientID  uint
	ServiceID uint
	Weekday   time.Weekday
	Start     schedule.Clock
	End       schedule.Clock
	Cadence   Cadence
	StartDate time.Time
	EndDate   *time.Time
	Active    bool
}

// ParseTemplate valida e converte. Qualquer problema é ErrInvalidTemplate,
// antes de qualquer expansão.
func ParseTemplate(m models.RecurringTemplate, loc *time.Location) (Template, error) {
	if m.Weekday < 0 || m.Weekday > 6 {
		return Template{}, ErrInvalidTemplate
	}

	cadence := Cadence(m.Cadence)
	if _, ok := cadence.IntervalDays(); !ok {
		return Template{}, ErrInvalidTemplate
	}

	start, err := schedule.ParseClock(m.StartTime)
	if err != nil {
		return Template{}, ErrInvalidTemplate
	}
	end, err := schedule.ParseClock(m.EndTime)
	if err != nil {
		return Template{}, ErrInvalidTemplate
	}
	if start >= end {
		return Template{}, ErrInvalidTemplate
	}

	startDate, err := schedule.ParseDate(m.StartDate, loc)
	if err != nil {
		return Template{}, ErrInvalidTemplate
	}

	t := Template{
		ID:        m.ID,
		SalonID:   m.SalonID,
		ClientID:  m.ClientID,
		ServiceID: m.ServiceID,
		Weekday:   time.Weekday(m.Weekday),
		Start:     start,
		End:       end,
		Cadence:   cadence,
		StartDate: startDate,
		Active:    m.Active,
	}

	if m.EndDate != nil && *m.EndDate != "" {
		endDate, err := schedule.ParseDate(*m.EndDate, loc)
		if err != nil || endDate.Before(startDate) {
			return Template{}, ErrInvalidTemplate
		}
		t.EndDate = &endDate
	}

	return t, nil
}

func ValidateTemplate(m models.RecurringTemplate) error {
	_, err := ParseTemplate(m, time.UTC)
	return err
}
