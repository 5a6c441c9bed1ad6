package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// REGISTER PAYMENT
// ======================================================

type RegisterPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterPayment {
	return &RegisterPayment{repo: repo, audit: audit}
}

// Execute grava o valor pago acumulado (não é incremento).
func (uc *RegisterPayment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	paid decimal.Decimal,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, salonID, appointmentID)
	if err != nil {
		return nil, err
	}

	before := ap.Paid
	if err := domain.SetPaid(ap, paid); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_payment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"paid_before":    before.StringFixed(2),
			"paid":           ap.Paid.StringFixed(2),
			"payment_status": ap.PaymentStatus,
		},
	})

	return ap, nil
}

// ======================================================
// UPDATE TOTAL
// ======================================================

type UpdateTotal struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateTotal(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateTotal {
	return &UpdateTotal{repo: repo, audit: audit}
}

func (uc *UpdateTotal) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	total decimal.Decimal,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, salonID, appointmentID)
	if err != nil {
		return nil, err
	}

	before := ap.Total
	if err := domain.SetTotal(ap, total); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_total_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"total_before": before.StringFixed(2),
			"total":        ap.Total.StringFixed(2),
		},
	})

	return ap, nil
}
