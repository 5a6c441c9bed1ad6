package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Datas são "YYYY-MM-DD" no fuso do salão.
type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.SalonService, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		salonID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListWorkingHours(
		ctx context.Context,
		salonID uint,
	) ([]models.WorkingHours, error)

	// Fechamentos com data em [from, to).
	ListClosures(
		ctx context.Context,
		salonID uint,
		from string,
		to string,
	) ([]models.SalonClosure, error)

	// Todos os status; o detector de conflitos ignora os cancelados.
	ListAppointmentsForDay(
		ctx context.Context,
		salonID uint,
		date string,
	) ([]models.Appointment, error)

	// Intervalo [from, to).
	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		from string,
		to string,
	) ([]models.Appointment, error)
}
