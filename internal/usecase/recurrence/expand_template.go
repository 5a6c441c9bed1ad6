package recurrence

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/recurrence"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var (
	ErrSalonNotFound       = httperr.ErrBusiness("salon_not_found")
	ErrTemplateNotFound    = httperr.ErrBusiness("template_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrInvalidAnchor       = httperr.ErrBusiness("invalid_anchor")
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ExpandTemplateInput struct {
	SalonID    uint
	UserID     *uint
	TemplateID uint
	// Agendamento que abre a série (normalmente o primeiro do cronograma).
	AnchorAppointmentID uint
	// <= 0 usa o padrão configurado.
	Count int
}

type ExpandTemplateOutput struct {
	Requested    int                  `json:"requested"`
	Created      int                  `json:"created"`
	Appointments []models.Appointment `json:"appointments"`
	Skipped      []recurrence.Skip    `json:"skipped"`
	Message      string               `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

type ExpandTemplate struct {
	appointments appointment.Repository
	templates    recurrence.Repository
	audit        *audit.Dispatcher
	events       *events.Dispatcher
	logger       *zap.Logger
	defaultCount int
	now          func() time.Time
}

func NewExpandTemplate(
	appointments appointment.Repository,
	templates recurrence.Repository,
	audit *audit.Dispatcher,
	events *events.Dispatcher,
	logger *zap.Logger,
	defaultCount int,
) *ExpandTemplate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCount <= 0 {
		defaultCount = recurrence.DefaultCount
	}
	return &ExpandTemplate{
		appointments: appointments,
		templates:    templates,
		audit:        audit,
		events:       events,
		logger:       logger,
		defaultCount: defaultCount,
		now:          time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ExpandTemplate) Execute(
	ctx context.Context,
	in ExpandTemplateInput,
) (*ExpandTemplateOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Salão, cronograma e âncora
	// --------------------------------------------------
	salon, err := uc.appointments.GetSalonByID(ctx, in.SalonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	tplRow, err := uc.templates.GetTemplate(ctx, in.SalonID, in.TemplateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	tpl, err := recurrence.ParseTemplate(*tplRow, loc)
	if err != nil {
		return nil, err
	}

	anchor, err := uc.appointments.GetAppointment(ctx, in.SalonID, in.AnchorAppointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	// âncora: mesmo cliente, mesmo serviço e não cancelada
	if anchor.ClientID != tpl.ClientID ||
		anchor.ServiceID != tpl.ServiceID ||
		appointment.Status(anchor.Status) == appointment.StatusCancelled {
		return nil, ErrInvalidAnchor
	}
	anchorDate, err := schedule.ParseDate(anchor.Date, loc)
	if err != nil {
		return nil, ErrInvalidAnchor
	}

	count := in.Count
	if count <= 0 {
		count = uc.defaultCount
	}

	// --------------------------------------------------
	// 2️⃣ Snapshot: expediente, fechamentos e ocupação
	// --------------------------------------------------
	interval, _ := tpl.Cadence.IntervalDays()
	from := schedule.FormatDate(anchorDate.AddDate(0, 0, 1))
	to := schedule.FormatDate(anchorDate.AddDate(0, 0, count*interval+1))

	rows, err := uc.appointments.ListWorkingHours(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	closures, err := uc.appointments.ListClosures(ctx, in.SalonID, from, to)
	if err != nil {
		return nil, err
	}
	calendar, err := appointment.CalendarFrom(rows, closures)
	if err != nil {
		return nil, err
	}
	existing, err := uc.appointments.ListAppointmentsForPeriod(ctx, in.SalonID, from, to)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Expansão (pura)
	// --------------------------------------------------
	res, err := recurrence.NewExpander(calendar, uc.logger).Expand(recurrence.Request{
		Template: *tplRow,
		Anchor:   *anchor,
		Count:    count,
		Existing: existing,
		Location: loc,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Gravação por ocorrência; o índice único decide
	// --------------------------------------------------
	created := make([]models.Appointment, 0, len(res.Appointments))
	skipped := res.Skipped

	for i := range res.Appointments {
		ap := res.Appointments[i]
		pr := res.PendingReturns[i]

		err := uc.templates.CreateOccurrence(ctx, &ap, &pr)
		if httperr.IsExclusionConflict(err) {
			uc.logger.Info("recurring occurrence lost at write time",
				zap.Uint("template_id", tpl.ID),
				zap.String("date", ap.Date),
			)
			skipped = append(skipped, recurrence.Skip{
				Date:   ap.Date,
				Reason: recurrence.SkipSlotUnavailable,
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		created = append(created, ap)
	}

	sort.SliceStable(skipped, func(i, j int) bool {
		return skipped[i].Date < skipped[j].Date
	})

	res.Appointments = created
	res.Skipped = skipped

	// --------------------------------------------------
	// 5️⃣ Auditoria + evento
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "recurring_template_expanded",
		Entity:   "recurring_template",
		EntityID: &tplRow.ID,
		Metadata: map[string]any{
			"anchor_id": anchor.ID,
			"requested": res.Requested,
			"created":   res.Created(),
			"skipped":   skipped,
		},
	})

	ev := events.New(events.TypeRecurrenceExpanded, in.SalonID, uc.now().In(loc))
	ev.TemplateID = tplRow.ID
	ev.ClientID = tplRow.ClientID
	ev.Total = anchor.Total
	ev.Requested = res.Requested
	ev.Created = res.Created()
	uc.events.Dispatch(ev)

	return &ExpandTemplateOutput{
		Requested:    res.Requested,
		Created:      res.Created(),
		Appointments: res.Appointments,
		Skipped:      res.Skipped,
		Message:      res.Summary(),
	}, nil
}
