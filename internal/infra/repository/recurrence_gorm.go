package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/recurrence"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RecurrenceGormRepository struct {
	db *gorm.DB
}

func NewRecurrenceGormRepository(db *gorm.DB) *RecurrenceGormRepository {
	return &RecurrenceGormRepository{db: db}
}

func (r *RecurrenceGormRepository) GetTemplate(
	ctx context.Context,
	salonID uint,
	templateID uint,
) (*models.RecurringTemplate, error) {

	var tpl models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", templateID, salonID).
		First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *RecurrenceGormRepository) CreateOccurrence(
	ctx context.Context,
	ap *models.Appointment,
	pr *models.PendingReturn,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		pr.AppointmentID = &ap.ID
		return tx.Create(pr).Error
	})
}

var _ recurrence.Repository = (*RecurrenceGormRepository)(nil)
