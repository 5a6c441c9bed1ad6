package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `gorm:"index" json:"salon_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint         `json:"service_id"`
	Service   SalonService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Data local do salão (YYYY-MM-DD) e início (HH:MM).
	Date        string `gorm:"size:10;not null;index" json:"date"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Total         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total"`
	Paid          decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"paid"`
	Due           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"due"`
	PaymentStatus string          `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	Origin              string `gorm:"size:20;default:'manual'" json:"origin"`
	RecurringTemplateID *uint  `gorm:"index" json:"recurring_template_id"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
