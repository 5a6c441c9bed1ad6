package models

import "time"

// RecurringTemplate é o cronograma de um cliente: mesmo dia da semana,
// mesmo horário, repetido pela cadência.
type RecurringTemplate struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	ClientID  uint `json:"client_id"`
	ServiceID uint `json:"service_id"`

	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Cadence   string `gorm:"size:20;not null" json:"cadence"`

	StartDate string  `gorm:"size:10;not null" json:"start_date"`
	EndDate   *string `gorm:"size:10" json:"end_date"`
	Active    bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
