package storage

import (
	"path/filepath"
	"testing"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "studyflow.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInit_SeedsDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.SlotStart != constants.DefaultSlotStart || settings.SlotEnd != constants.DefaultSlotEnd {
		t.Errorf("seeded slot %s-%s, want %s-%s",
			settings.SlotStart, settings.SlotEnd, constants.DefaultSlotStart, constants.DefaultSlotEnd)
	}
	if settings.MaxAdjustEnd != constants.MaxAdjustEndTime {
		t.Errorf("seeded max adjust end %s, want %s", settings.MaxAdjustEnd, constants.MaxAdjustEndTime)
	}
}

func TestInit_Idempotent(t *testing.T) {
	store := newTestStore(t)

	custom := models.Settings{
		SlotStart:       "08:00",
		SlotEnd:         "20:00",
		DefaultBlockMin: 45,
		MaxAdjustEnd:    "22:00",
		Timezone:        "Local",
	}
	if err := store.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// A second init must not reset the customized settings.
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != custom {
		t.Errorf("settings after re-init = %+v, want %+v", settings, custom)
	}
}

func TestLoad_MissingDatabase(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected an error for an uninitialized database")
	}
}

func TestSavePlans_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	date := "2026-03-02"

	start, end := "09:00", "10:00"
	plans := []models.ScheduledPlan{
		{
			ID:              "p1",
			PlanDate:        date,
			BlockIndex:      0,
			ContentType:     constants.ContentBook,
			ContentID:       "algebra-ch3",
			Subject:         "math",
			IsReschedulable: true,
			StartTime:       &start,
			EndTime:         &end,
		},
		{
			ID:          "p2",
			PlanDate:    date,
			BlockIndex:  1,
			ContentType: constants.ContentLecture,
			ContentID:   "bio-12",
		},
	}

	if err := store.SavePlans(date, plans); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	loaded, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(loaded))
	}

	p1 := loaded[0]
	if p1.ID != "p1" || p1.ContentType != constants.ContentBook || p1.Subject != "math" {
		t.Errorf("unexpected first plan: %+v", p1)
	}
	if !p1.HasTimes() || *p1.StartTime != "09:00" || *p1.EndTime != "10:00" {
		t.Errorf("times not round-tripped: %+v", p1)
	}
	if !p1.IsReschedulable {
		t.Error("reschedulable flag not round-tripped")
	}

	// Absent times come back as nil pointers, not empty strings.
	p2 := loaded[1]
	if p2.StartTime != nil || p2.EndTime != nil {
		t.Errorf("untimed plan gained times: %+v", p2)
	}
}

func TestSavePlans_ReplacesExistingDate(t *testing.T) {
	store := newTestStore(t)
	date := "2026-03-02"

	first := []models.ScheduledPlan{{ID: "old", PlanDate: date, ContentType: constants.ContentBook, ContentID: "a"}}
	if err := store.SavePlans(date, first); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	second := []models.ScheduledPlan{{ID: "new", PlanDate: date, ContentType: constants.ContentBook, ContentID: "b"}}
	if err := store.SavePlans(date, second); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	loaded, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "new" {
		t.Errorf("save did not replace the date's plans: %+v", loaded)
	}
}

func TestSavePlans_DoesNotTouchOtherDates(t *testing.T) {
	store := newTestStore(t)

	if err := store.SavePlans("2026-03-02", []models.ScheduledPlan{{ID: "day1", ContentType: constants.ContentBook, ContentID: "a"}}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}
	if err := store.SavePlans("2026-03-03", []models.ScheduledPlan{{ID: "day2", ContentType: constants.ContentBook, ContentID: "b"}}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	loaded, err := store.GetPlans("2026-03-02")
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "day1" {
		t.Errorf("saving another date disturbed this one: %+v", loaded)
	}
}

func TestDeletePlans(t *testing.T) {
	store := newTestStore(t)
	date := "2026-03-02"

	if err := store.SavePlans(date, []models.ScheduledPlan{{ID: "p1", ContentType: constants.ContentBook, ContentID: "a"}}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}
	if err := store.DeletePlans(date); err != nil {
		t.Fatalf("DeletePlans failed: %v", err)
	}

	loaded, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected no plans after delete, got %d", len(loaded))
	}
}

func TestCommitments(t *testing.T) {
	store := newTestStore(t)

	entries := []models.ExistingPlanInfo{
		{Date: "2026-03-02", StartTime: "14:00", EndTime: "16:00", Source: "academy"},
		{Date: "2026-03-02", StartTime: "12:00", EndTime: "13:00", Source: "meal"},
		{Date: "2026-03-03", StartTime: "09:00", EndTime: "10:00", Source: "travel"},
	}
	for _, c := range entries {
		if err := store.AddCommitment(c); err != nil {
			t.Fatalf("AddCommitment failed: %v", err)
		}
	}

	day, err := store.GetCommitments("2026-03-02")
	if err != nil {
		t.Fatalf("GetCommitments failed: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 commitments on 2026-03-02, got %d", len(day))
	}
	// Sorted by start time.
	if day[0].Source != "meal" || day[1].Source != "academy" {
		t.Errorf("commitments out of order: %+v", day)
	}

	all, err := store.GetAllCommitments()
	if err != nil {
		t.Fatalf("GetAllCommitments failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 commitments total, got %d", len(all))
	}

	if err := store.ClearCommitments("2026-03-02"); err != nil {
		t.Fatalf("ClearCommitments failed: %v", err)
	}
	remaining, err := store.GetAllCommitments()
	if err != nil {
		t.Fatalf("GetAllCommitments failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Date != "2026-03-03" {
		t.Errorf("clear removed the wrong rows: %+v", remaining)
	}
}
