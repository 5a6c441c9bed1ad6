package recurrence

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DefaultCount = 3

// Motivos de ocorrência pulada. Não são erros: a recorrência é best-effort.
const (
	SkipInactiveDay         = "inactive_day"
	SkipOutsideWorkingHours = "outside_working_hours"
	SkipSlotUnavailable     = "slot_unavailable"
)

type Skip struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type Request struct {
	Template models.RecurringTemplate
	// Primeira ocorrência concreta; define data inicial, duração e total.
	Anchor models.Appointment
	Count  int
	// Agendamentos existentes cobrindo as datas candidatas.
	Existing []models.Appointment
	Location *time.Location
}

type Result struct {
	Requested      int                    `json:"requested"`
	Appointments   []models.Appointment   `json:"appointments"`
	PendingReturns []models.PendingReturn `json:"pending_returns"`
	Skipped        []Skip                 `json:"skipped"`
}

func (r Result) Created() int {
	return len(r.Appointments)
}

func (r Result) Summary() string {
	return fmt.Sprintf("%d de %d agendamentos criados", r.Created(), r.Requested)
}

// ======================================================
// EXPANDER
// ======================================================

type Expander struct {
	hours  schedule.DayCatalog
	logger *zap.Logger
}

func NewExpander(hours schedule.DayCatalog, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{hours: hours, logger: logger}
}

// CandidateDates: anchor + k*intervalo, k = 1..count, sem passar da data
// final do cronograma.
func CandidateDates(anchor time.Time, cadence Cadence, count int, until *time.Time) []time.Time {
	days, ok := cadence.IntervalDays()
	if !ok || count <= 0 {
		return nil
	}

	out := make([]time.Time, 0, count)
	for k := 1; k <= count; k++ {
		d := anchor.AddDate(0, 0, k*days)
		if until != nil && d.After(*until) {
			break
		}
		out = append(out, d)
	}
	return out
}

// Expand é função pura do pedido: mesmo anchor, cronograma e snapshot
// produzem o mesmo resultado.
func (e *Expander) Expand(req Request) (Result, error) {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	tpl, err := ParseTemplate(req.Template, loc)
	if err != nil {
		return Result{}, err
	}

	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}

	res := Result{
		Requested:      count,
		Appointments:   []models.Appointment{},
		PendingReturns: []models.PendingReturn{},
		Skipped:        []Skip{},
	}

	if !tpl.Active {
		e.logger.Info("recurring template inactive, nothing to expand",
			zap.Uint("template_id", tpl.ID))
		return res, nil
	}

	anchorDate, err := schedule.ParseDate(req.Anchor.Date, loc)
	if err != nil {
		return Result{}, ErrInvalidTemplate
	}
	duration := req.Anchor.DurationMin
	if duration <= 0 {
		return Result{}, schedule.ErrInvalidDuration
	}

	for _, date := range CandidateDates(anchorDate, tpl.Cadence, count, tpl.EndDate) {
		day := schedule.FormatDate(date)

		wh := e.hours.WorkingHoursOn(date)
		if !wh.Active {
			res.Skipped = append(res.Skipped, e.skip(tpl, day, SkipInactiveDay))
			continue
		}

		if !wh.Fits(tpl.Start, duration) {
			res.Skipped = append(res.Skipped, e.skip(tpl, day, SkipOutsideWorkingHours))
			continue
		}

		occupied, err := appointment.OccupancyOn(req.Existing, day)
		if err != nil {
			return Result{}, err
		}
		if !schedule.IsAvailable(tpl.Start, duration, occupied, 0) {
			res.Skipped = append(res.Skipped, e.skip(tpl, day, SkipSlotUnavailable))
			continue
		}

		ap, err := materialize(tpl, req.Anchor, day, duration)
		if err != nil {
			return Result{}, err
		}
		res.Appointments = append(res.Appointments, ap)
		res.PendingReturns = append(res.PendingReturns, models.PendingReturn{
			SalonID:    tpl.SalonID,
			ClientID:   tpl.ClientID,
			TemplateID: tpl.ID,
			TargetDate: day,
			Status:     string(ReturnPending),
		})
	}

	e.logger.Info("recurring template expanded",
		zap.Uint("template_id", tpl.ID),
		zap.Int("requested", res.Requested),
		zap.Int("created", res.Created()),
		zap.Int("skipped", len(res.Skipped)),
	)

	return res, nil
}

func (e *Expander) skip(tpl Template, day, reason string) Skip {
	e.logger.Info("recurring occurrence skipped",
		zap.Uint("template_id", tpl.ID),
		zap.String("date", day),
		zap.String("reason", reason),
	)
	return Skip{Date: day, Reason: reason}
}

func materialize(tpl Template, anchor models.Appointment, day string, duration int) (models.Appointment, error) {
	templateID := tpl.ID

	ap := models.Appointment{
		SalonID:             tpl.SalonID,
		ClientID:            tpl.ClientID,
		ServiceID:           tpl.ServiceID,
		Date:                day,
		StartTime:           tpl.Start.String(),
		DurationMin:         duration,
		Status:              string(appointment.InitialStatus()),
		Origin:              string(appointment.OriginRecurringTemplate),
		RecurringTemplateID: &templateID,
	}
	if ap.ServiceID == 0 {
		ap.ServiceID = anchor.ServiceID
	}

	if err := appointment.InitPayment(&ap, anchor.Total); err != nil {
		return models.Appointment{}, err
	}
	return ap, nil
}
