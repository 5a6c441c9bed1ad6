package recurrence

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func allWeek(t *testing.T, open, close string) schedule.WeeklyHours {
	t.Helper()
	var entries []schedule.WorkingHoursEntry
	for d := time.Sunday; d <= time.Saturday; d++ {
		entries = append(entries, schedule.WorkingHoursEntry{
			Weekday: d,
			Active:  true,
			Open:    schedule.MustClock(open),
			Close:   schedule.MustClock(close),
		})
	}
	w, err := schedule.NewWeeklyHours(entries)
	if err != nil {
		t.Fatalf("weekly hours: %v", err)
	}
	return w
}

func mondayTemplate(cadence string) models.RecurringTemplate {
	return models.RecurringTemplate{
		ID:        42,
		SalonID:   1,
		ClientID:  7,
		ServiceID: 3,
		Weekday:   int(time.Monday),
		StartTime: "10:00",
		EndTime:   "11:00",
		Cadence:   cadence,
		StartDate: "2026-03-02",
		Active:    true,
	}
}

func anchor() models.Appointment {
	return models.Appointment{
		ID:          100,
		SalonID:     1,
		ClientID:    7,
		ServiceID:   3,
		Date:        "2026-03-02",
		StartTime:   "10:00",
		DurationMin: 60,
		Status:      "scheduled",
		Total:       decimal.NewFromInt(120),
	}
}

func dates(aps []models.Appointment) []string {
	out := []string{}
	for _, ap := range aps {
		out = append(out, ap.Date)
	}
	return out
}

func TestExpand_InactiveThirdWeek(t *testing.T) {
	cal := schedule.NewCalendar(allWeek(t, "09:00", "18:00"), []string{"2026-03-23"})
	exp := NewExpander(cal, nil)

	res, err := exp.Expand(Request{
		Template: mondayTemplate("weekly"),
		Anchor:   anchor(),
		Count:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Created() != 2 || len(res.PendingReturns) != 2 {
		t.Fatalf("expected 2 appointments + 2 pending returns, got %d + %d", res.Created(), len(res.PendingReturns))
	}
	if res.Summary() != "2 de 3 agendamentos criados" {
		t.Fatalf("unexpected summary %q", res.Summary())
	}
	if want := []string{"2026-03-09", "2026-03-16"}; !reflect.DeepEqual(dates(res.Appointments), want) {
		t.Fatalf("expected dates %v, got %v", want, dates(res.Appointments))
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != (Skip{Date: "2026-03-23", Reason: SkipInactiveDay}) {
		t.Fatalf("unexpected skipped %+v", res.Skipped)
	}

	for i, ap := range res.Appointments {
		if ap.Status != string(appointment.StatusScheduled) ||
			ap.PaymentStatus != string(appointment.PaymentUnpaid) ||
			ap.Origin != string(appointment.OriginRecurringTemplate) {
			t.Fatalf("appointment %d: unexpected state %+v", i, ap)
		}
		if ap.RecurringTemplateID == nil || *ap.RecurringTemplateID != 42 {
			t.Fatalf("appointment %d: template id not attached", i)
		}
		if ap.StartTime != "10:00" || ap.DurationMin != 60 {
			t.Fatalf("appointment %d: expected 10:00/60, got %s/%d", i, ap.StartTime, ap.DurationMin)
		}
		if !ap.Total.Equal(decimal.NewFromInt(120)) || !ap.Due.Equal(ap.Total) {
			t.Fatalf("appointment %d: expected total=due=120, got %s/%s", i, ap.Total, ap.Due)
		}

		pr := res.PendingReturns[i]
		if pr.TargetDate != ap.Date || pr.Status != string(ReturnPending) || pr.TemplateID != 42 || pr.ClientID != 7 {
			t.Fatalf("pending return %d: unexpected %+v", i, pr)
		}
	}
}

func TestExpand_SkipsTakenSlot(t *testing.T) {
	exp := NewExpander(allWeek(t, "09:00", "18:00"), nil)

	existing := []models.Appointment{
		{ID: 5, Date: "2026-03-16", StartTime: "10:30", DurationMin: 30, Status: "scheduled"},
		{ID: 6, Date: "2026-03-09", StartTime: "10:00", DurationMin: 60, Status: "cancelled"},
		{ID: 8, Date: "2026-03-23", StartTime: "11:00", DurationMin: 60, Status: "scheduled"},
	}

	res, err := exp.Expand(Request{
		Template: mondayTemplate("weekly"),
		Anchor:   anchor(),
		Count:    3,
		Existing: existing,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"2026-03-09", "2026-03-23"}; !reflect.DeepEqual(dates(res.Appointments), want) {
		t.Fatalf("expected %v, got %v", want, dates(res.Appointments))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != SkipSlotUnavailable {
		t.Fatalf("expected one slot_unavailable skip, got %+v", res.Skipped)
	}
}

func TestExpand_OutsideWorkingHours(t *testing.T) {
	exp := NewExpander(allWeek(t, "13:00", "18:00"), nil)

	res, err := exp.Expand(Request{Template: mondayTemplate("weekly"), Anchor: anchor(), Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created() != 0 || len(res.Skipped) != 2 || res.Skipped[0].Reason != SkipOutsideWorkingHours {
		t.Fatalf("expected all skipped as outside_working_hours, got %+v", res.Skipped)
	}
}

func TestExpand_EndDateCaps(t *testing.T) {
	tpl := mondayTemplate("biweekly")
	end := "2026-03-31"
	tpl.EndDate = &end

	res, err := NewExpander(allWeek(t, "09:00", "18:00"), nil).Expand(Request{
		Template: tpl,
		Anchor:   anchor(),
		Count:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"2026-03-16", "2026-03-30"}; !reflect.DeepEqual(dates(res.Appointments), want) {
		t.Fatalf("expected %v, got %v", want, dates(res.Appointments))
	}
	if res.Requested != 5 {
		t.Fatalf("expected requested 5, got %d", res.Requested)
	}
}

func TestExpand_DefaultCountAndMonthly(t *testing.T) {
	res, err := NewExpander(allWeek(t, "09:00", "18:00"), nil).Expand(Request{
		Template: mondayTemplate("monthly"),
		Anchor:   anchor(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Requested != DefaultCount {
		t.Fatalf("expected default count %d, got %d", DefaultCount, res.Requested)
	}
	want := []string{"2026-04-01", "2026-05-01", "2026-05-31"}
	if !reflect.DeepEqual(dates(res.Appointments), want) {
		t.Fatalf("expected %v, got %v", want, dates(res.Appointments))
	}
}

func TestExpand_Deterministic(t *testing.T) {
	cal := schedule.NewCalendar(allWeek(t, "09:00", "18:00"), []string{"2026-03-16"})
	req := Request{
		Template: mondayTemplate("weekly"),
		Anchor:   anchor(),
		Count:    4,
		Existing: []models.Appointment{
			{ID: 9, Date: "2026-03-23", StartTime: "09:30", DurationMin: 45, Status: "scheduled"},
		},
	}

	exp := NewExpander(cal, nil)
	first, err := exp.Expand(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := exp.Expand(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results:\n%+v\n%+v", first, second)
	}
}

func TestExpand_InvalidTemplate(t *testing.T) {
	badTimes := mondayTemplate("weekly")
	badTimes.StartTime = "11:00"
	badTimes.EndTime = "10:00"

	badCadence := mondayTemplate("daily")

	badEnd := mondayTemplate("weekly")
	end := "2026-01-01"
	badEnd.EndDate = &end

	exp := NewExpander(allWeek(t, "09:00", "18:00"), nil)
	for name, tpl := range map[string]models.RecurringTemplate{
		"start after end":  badTimes,
		"unknown cadence":  badCadence,
		"end before start": badEnd,
	} {
		if _, err := exp.Expand(Request{Template: tpl, Anchor: anchor(), Count: 3}); !errors.Is(err, ErrInvalidTemplate) {
			t.Fatalf("%s: expected ErrInvalidTemplate, got %v", name, err)
		}
	}
}

func TestExpand_InactiveTemplate(t *testing.T) {
	tpl := mondayTemplate("weekly")
	tpl.Active = false

	res, err := NewExpander(allWeek(t, "09:00", "18:00"), nil).Expand(Request{Template: tpl, Anchor: anchor(), Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created() != 0 || len(res.PendingReturns) != 0 {
		t.Fatalf("expected nothing created, got %d", res.Created())
	}
}

func TestCandidateDates(t *testing.T) {
	a := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := CandidateDates(a, CadenceWeekly, 3, nil)
	if len(got) != 3 || !got[2].Equal(a.AddDate(0, 0, 21)) {
		t.Fatalf("unexpected dates %v", got)
	}
	if CandidateDates(a, Cadence("yearly"), 3, nil) != nil {
		t.Fatalf("unknown cadence should yield nil")
	}
}

func TestCanResolveReturn(t *testing.T) {
	if err := CanResolveReturn(ReturnPending, ReturnDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CanResolveReturn(ReturnDone, ReturnCancelled); err == nil {
		t.Fatalf("expected error leaving a terminal state")
	}
	if err := CanResolveReturn(ReturnPending, ReturnPending); err == nil {
		t.Fatalf("expected error for non-terminal target")
	}
}
