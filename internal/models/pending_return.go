package models

import "time"

// PendingReturn acompanha o retorno esperado de um cliente do cronograma.
type PendingReturn struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	ClientID      uint   `json:"client_id"`
	TemplateID    uint   `gorm:"index" json:"template_id"`
	TargetDate    string `gorm:"size:10;not null" json:"target_date"`
	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	AppointmentID *uint  `json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
