package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint
	// Operador logado; nil no agendamento online.
	UserID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date   string
	Time   string
	Notes  string
	Origin domain.Origin
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker lock.DayLocker
	audit  *audit.Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.DayLocker,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *CreateAppointment {
	if locker == nil {
		locker = lock.NopDayLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	origin := in.Origin
	if origin == "" {
		origin = domain.OriginManual
	}
	if !origin.Valid() || origin == domain.OriginRecurringTemplate {
		return nil, ErrInvalidOrigin
	}

	// --------------------------------------------------
	// 1️⃣ Salão
	// --------------------------------------------------
	salon, err := loadSalon(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	loc := timezone.Location(salon.Timezone)
	date, start, err := parseDateTime(in.Date, in.Time, loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência (online) / passado (balcão)
	// --------------------------------------------------
	now := uc.now().In(loc)
	earliest := now
	if origin == domain.OriginOnlineBooking {
		earliest = now.Add(minAdvance(salon))
	}
	if start.On(date).Before(earliest) {
		return nil, ErrTooSoon
	}

	// --------------------------------------------------
	// 4️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, schedule.ErrInvalidDuration
	}

	// --------------------------------------------------
	// 5️⃣ Segura o dia enquanto checa e grava
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, in.SalonID, in.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// 6️⃣ Expediente + conflito
	// --------------------------------------------------
	d, err := loadDay(ctx, uc.repo, in.SalonID, date)
	if err != nil {
		return nil, err
	}
	if !d.hours.Fits(start, service.DurationMin) {
		return nil, ErrOutsideWorkingHours
	}
	if !schedule.IsAvailable(start, service.DurationMin, d.occupied, 0) {
		return nil, ErrTimeConflict
	}

	// --------------------------------------------------
	// 7️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação (status e valores centralizados)
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:     in.SalonID,
		ClientID:    client.ID,
		ServiceID:   service.ID,
		Date:        schedule.FormatDate(date),
		StartTime:   start.String(),
		DurationMin: service.DurationMin,
		Status:      string(domain.InitialStatus()),
		Origin:      string(origin),
		Notes:       in.Notes,
	}
	if err := domain.InitPayment(ap, service.Price); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		err = conflictOrErr(err)
		if errors.Is(err, ErrTimeConflict) {
			uc.logger.Info("appointment rejected at write time",
				zap.Uint("salon_id", in.SalonID),
				zap.String("date", ap.Date),
				zap.String("start_time", ap.StartTime),
			)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"origin": ap.Origin},
	})

	return ap, nil
}
