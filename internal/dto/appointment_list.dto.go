package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uint            `json:"id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	DurationMin   int             `json:"duration_min"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Due           decimal.Decimal `json:"due"`
	Origin        string          `json:"origin"`
	ClientName    string          `json:"client_name"`
	ServiceName   string          `json:"service_name"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		end := ap.StartTime
		if start, err := schedule.ParseClock(ap.StartTime); err == nil {
			end = start.Add(ap.DurationMin).String()
		}
		out = append(out, AppointmentListDTO{
			ID:            ap.ID,
			Date:          ap.Date,
			StartTime:     ap.StartTime,
			EndTime:       end,
			DurationMin:   ap.DurationMin,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			Total:         ap.Total,
			Paid:          ap.Paid,
			Due:           ap.Due,
			Origin:        ap.Origin,
			ClientName:    ap.Client.Name,
			ServiceName:   ap.Service.Name,
		})
	}
	return out
}
