package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// uma conexão só: cada conexão ":memory:" é um banco novo
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedSalon(t *testing.T, gdb *gorm.DB) (models.Salon, models.SalonService, models.Client) {
	t.Helper()

	salon := models.Salon{Name: "Studio Bela", Slug: "studio-bela"}
	if err := gdb.Create(&salon).Error; err != nil {
		t.Fatalf("create salon: %v", err)
	}
	svc := models.SalonService{
		SalonID:     salon.ID,
		Name:        "Escova",
		DurationMin: 60,
		Price:       decimal.NewFromInt(100),
	}
	if err := gdb.Create(&svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	client := models.Client{SalonID: salon.ID, Name: "Ana", Phone: "11999990000"}
	if err := gdb.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return salon, svc, client
}

func newAppointment(salonID, clientID, serviceID uint, date, start string) *models.Appointment {
	return &models.Appointment{
		SalonID:       salonID,
		ClientID:      clientID,
		ServiceID:     serviceID,
		Date:          date,
		StartTime:     start,
		DurationMin:   60,
		Status:        "scheduled",
		Total:         decimal.NewFromInt(100),
		Due:           decimal.NewFromInt(100),
		PaymentStatus: "unpaid",
		Origin:        "manual",
	}
}

func TestAppointmentRepo_CreateAndList(t *testing.T) {
	gdb := newTestDB(t)
	salon, svc, client := seedSalon(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	for _, start := range []string{"11:00", "09:00"} {
		if err := repo.CreateAppointment(ctx, newAppointment(salon.ID, client.ID, svc.ID, "2026-03-02", start)); err != nil {
			t.Fatalf("create %s: %v", start, err)
		}
	}
	if err := repo.CreateAppointment(ctx, newAppointment(salon.ID, client.ID, svc.ID, "2026-03-03", "09:00")); err != nil {
		t.Fatalf("create next day: %v", err)
	}

	day, err := repo.ListAppointmentsForDay(ctx, salon.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(day) != 2 || day[0].StartTime != "09:00" || day[1].StartTime != "11:00" {
		t.Fatalf("unexpected day listing: %+v", day)
	}

	period, err := repo.ListAppointmentsForPeriod(ctx, salon.ID, "2026-03-01", "2026-04-01")
	if err != nil {
		t.Fatalf("list period: %v", err)
	}
	if len(period) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(period))
	}
	if period[0].Client.Name != "Ana" || period[0].Service.Name != "Escova" {
		t.Fatalf("associations not preloaded: %+v", period[0])
	}

	// limite superior é exclusivo
	period, err = repo.ListAppointmentsForPeriod(ctx, salon.ID, "2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("list period: %v", err)
	}
	if len(period) != 2 {
		t.Fatalf("expected 2 appointments before 03-03, got %d", len(period))
	}
}

func TestAppointmentRepo_ActiveSlotIsUnique(t *testing.T) {
	gdb := newTestDB(t)
	salon, svc, client := seedSalon(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	first := newAppointment(salon.ID, client.ID, svc.ID, "2026-03-02", "09:00")
	if err := repo.CreateAppointment(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	err := repo.CreateAppointment(ctx, newAppointment(salon.ID, client.ID, svc.ID, "2026-03-02", "09:00"))
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !httperr.IsExclusionConflict(err) {
		t.Fatalf("expected exclusion conflict, got %v", err)
	}

	// cancelado libera o horário
	first.Status = "cancelled"
	if err := repo.UpdateAppointment(ctx, first); err != nil {
		t.Fatalf("cancel first: %v", err)
	}
	if err := repo.CreateAppointment(ctx, newAppointment(salon.ID, client.ID, svc.ID, "2026-03-02", "09:00")); err != nil {
		t.Fatalf("slot should be free after cancel: %v", err)
	}
}

func TestAppointmentRepo_GetAppointmentScopedBySalon(t *testing.T) {
	gdb := newTestDB(t)
	salon, svc, client := seedSalon(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	ap := newAppointment(salon.ID, client.ID, svc.ID, "2026-03-02", "09:00")
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetAppointment(ctx, salon.ID, ap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total not persisted: %s", got.Total)
	}

	if _, err := repo.GetAppointment(ctx, salon.ID+1, ap.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for another salon, got %v", err)
	}
}

func TestAppointmentRepo_GetOrCreateClient(t *testing.T) {
	gdb := newTestDB(t)
	salon, _, client := seedSalon(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	same, err := repo.GetOrCreateClient(ctx, salon.ID, "Outro Nome", client.Phone, "")
	if err != nil {
		t.Fatalf("get existing: %v", err)
	}
	if same.ID != client.ID {
		t.Fatalf("expected existing client %d, got %d", client.ID, same.ID)
	}

	created, err := repo.GetOrCreateClient(ctx, salon.ID, "Bia", "11988887777", "bia@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.ID == client.ID {
		t.Fatalf("expected a new client, got %+v", created)
	}
}

func TestAppointmentRepo_WorkingHoursAndClosures(t *testing.T) {
	gdb := newTestDB(t)
	salon, _, _ := seedSalon(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	rows := []models.WorkingHours{
		{SalonID: salon.ID, Weekday: 2, StartTime: "09:00", EndTime: "18:00", Active: true},
		{SalonID: salon.ID, Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
	}
	if err := gdb.Create(&rows).Error; err != nil {
		t.Fatalf("seed hours: %v", err)
	}
	closures := []models.SalonClosure{
		{SalonID: salon.ID, Date: "2026-03-23", Reason: "Feriado"},
		{SalonID: salon.ID, Date: "2026-04-21", Reason: "Tiradentes"},
	}
	if err := gdb.Create(&closures).Error; err != nil {
		t.Fatalf("seed closures: %v", err)
	}

	list, err := repo.ListWorkingHours(ctx, salon.ID)
	if err != nil {
		t.Fatalf("list hours: %v", err)
	}
	if len(list) != 2 || list[0].Weekday != 1 {
		t.Fatalf("unexpected hours: %+v", list)
	}

	wh, err := repo.GetWorkingHours(ctx, salon.ID, 2)
	if err != nil || wh.EndTime != "18:00" {
		t.Fatalf("unexpected tuesday hours: %+v %v", wh, err)
	}

	got, err := repo.ListClosures(ctx, salon.ID, "2026-03-01", "2026-04-01")
	if err != nil {
		t.Fatalf("list closures: %v", err)
	}
	if len(got) != 1 || got[0].Date != "2026-03-23" {
		t.Fatalf("unexpected closures: %+v", got)
	}
}

func TestRecurrenceRepo_CreateOccurrence(t *testing.T) {
	gdb := newTestDB(t)
	salon, svc, client := seedSalon(t, gdb)
	repo := NewRecurrenceGormRepository(gdb)
	ctx := context.Background()

	tpl := models.RecurringTemplate{
		SalonID:   salon.ID,
		ClientID:  client.ID,
		ServiceID: svc.ID,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "10:00",
		Cadence:   "weekly",
		StartDate: "2026-03-02",
	}
	if err := gdb.Create(&tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}

	got, err := repo.GetTemplate(ctx, salon.ID, tpl.ID)
	if err != nil || got.Cadence != "weekly" || !got.Active {
		t.Fatalf("unexpected template: %+v %v", got, err)
	}

	ap := newAppointment(salon.ID, client.ID, svc.ID, "2026-03-09", "09:00")
	ap.Origin = "recurring-template"
	ap.RecurringTemplateID = &tpl.ID
	pr := &models.PendingReturn{
		SalonID:    salon.ID,
		ClientID:   client.ID,
		TemplateID: tpl.ID,
		TargetDate: "2026-03-09",
		Status:     "pending",
	}
	if err := repo.CreateOccurrence(ctx, ap, pr); err != nil {
		t.Fatalf("create occurrence: %v", err)
	}
	if pr.AppointmentID == nil || *pr.AppointmentID != ap.ID {
		t.Fatalf("pending return not linked: %+v", pr)
	}

	// mesmo horário: nada é gravado
	dup := newAppointment(salon.ID, client.ID, svc.ID, "2026-03-09", "09:00")
	dupReturn := &models.PendingReturn{
		SalonID:    salon.ID,
		ClientID:   client.ID,
		TemplateID: tpl.ID,
		TargetDate: "2026-03-09",
		Status:     "pending",
	}
	err = repo.CreateOccurrence(ctx, dup, dupReturn)
	if !httperr.IsExclusionConflict(err) {
		t.Fatalf("expected exclusion conflict, got %v", err)
	}

	var returns int64
	gdb.Model(&models.PendingReturn{}).Count(&returns)
	if returns != 1 {
		t.Fatalf("expected 1 pending return after rollback, got %d", returns)
	}
}
