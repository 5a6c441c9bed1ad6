package recurrence

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	GetTemplate(
		ctx context.Context,
		salonID uint,
		templateID uint,
	) (*models.RecurringTemplate, error)

	// Grava agendamento e retorno pendente juntos. Colisão no índice
	// único volta como erro do banco, sem gravar nada.
	CreateOccurrence(
		ctx context.Context,
		ap *models.Appointment,
		pr *models.PendingReturn,
	) error
}
