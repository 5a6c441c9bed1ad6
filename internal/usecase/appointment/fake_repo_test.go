package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// fakeRepo guarda tudo em memória, devolvendo cópias como o banco faria.
type fakeRepo struct {
	salon    models.Salon
	services []models.SalonService
	hours    []models.WorkingHours
	closures []models.SalonClosure
	clients  []models.Client
	aps      []models.Appointment

	createErr error
	hoursErr  error
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: models.Salon{
			ID:                1,
			Name:              "Studio Bela",
			Slug:              "studio-bela",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		services: []models.SalonService{
			{ID: 1, SalonID: 1, Name: "Escova", DurationMin: 60, Price: decimal.NewFromInt(100), Active: true},
		},
		hours: []models.WorkingHours{
			// segunda 09:00-12:00
			{SalonID: 1, Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
		},
		nextID: 100,
	}
}

func (f *fakeRepo) seed(id uint, date, start string, status string) {
	f.aps = append(f.aps, models.Appointment{
		ID:            id,
		SalonID:       1,
		ClientID:      1,
		ServiceID:     1,
		Date:          date,
		StartTime:     start,
		DurationMin:   60,
		Status:        status,
		Total:         decimal.NewFromInt(100),
		Due:           decimal.NewFromInt(100),
		PaymentStatus: "unpaid",
		Origin:        "manual",
	})
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if id != f.salon.ID {
		return nil, gorm.ErrRecordNotFound
	}
	s := f.salon
	return &s, nil
}

func (f *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.SalonService, error) {
	for _, s := range f.services {
		if s.ID == serviceID && s.SalonID == salonID && s.Active {
			out := s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.SalonID == salonID && c.Phone == phone {
			out := c
			return &out, nil
		}
	}
	c := models.Client{ID: uint(len(f.clients) + 1), SalonID: salonID, Name: name, Phone: phone, Email: email}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	ap.ID = f.nextID
	f.aps = append(f.aps, *ap)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, salonID, id uint) (*models.Appointment, error) {
	for _, ap := range f.aps {
		if ap.ID == id && ap.SalonID == salonID {
			out := ap
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.aps {
		if f.aps[i].ID == ap.ID {
			f.aps[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, salonID uint, weekday int) (*models.WorkingHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	for _, wh := range f.hours {
		if wh.SalonID == salonID && wh.Weekday == weekday {
			out := wh
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListWorkingHours(_ context.Context, salonID uint) ([]models.WorkingHours, error) {
	var out []models.WorkingHours
	for _, wh := range f.hours {
		if wh.SalonID == salonID {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListClosures(_ context.Context, salonID uint, from, to string) ([]models.SalonClosure, error) {
	var out []models.SalonClosure
	for _, c := range f.closures {
		if c.SalonID == salonID && c.Date >= from && c.Date < to {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, salonID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.aps {
		if ap.SalonID == salonID && ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, salonID uint, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.aps {
		if ap.SalonID == salonID && ap.Date >= from && ap.Date < to {
			out = append(out, ap)
		}
	}
	return out, nil
}

// ======================================================
// dispatchers de teste
// ======================================================

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func newAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, nil)
}

// domingo, 2026-03-01 08:00 em São Paulo
func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 8, 0, 0, 0, timezone.Location("America/Sao_Paulo"))
}
