package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := loadSalon(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	// --------------------------------------------------
	// Candidatos e ocupação
	// --------------------------------------------------
	d, err := loadDay(ctx, uc.repo, in.SalonID, date)
	if err != nil {
		return nil, err
	}

	candidates, err := schedule.GenerateSlots(d.hours, service.DurationMin)
	if err != nil {
		return nil, err
	}
	free := schedule.FilterAvailable(candidates, d.occupied, service.DurationMin)

	// --------------------------------------------------
	// Antecedência mínima (só afeta hoje)
	// --------------------------------------------------
	earliest := uc.now().In(loc).Add(minAdvance(salon))

	return domain.SlotsFrom(free, service.DurationMin, date, earliest), nil
}
