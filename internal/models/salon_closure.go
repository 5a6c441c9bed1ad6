package models

import "time"

// SalonClosure fecha o salão o dia inteiro (feriado, folga coletiva).
type SalonClosure struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SalonID uint   `gorm:"uniqueIndex:idx_salon_closure_day" json:"salon_id"`
	Date    string `gorm:"size:10;not null;uniqueIndex:idx_salon_closure_day" json:"date"`
	Reason  string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
