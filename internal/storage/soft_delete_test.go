package storage

import (
	"strings"
	"testing"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
)

func TestPlanSoftDelete(t *testing.T) {
	store := newTestStore(t)
	date := "2026-03-02"

	plans := []models.ScheduledPlan{
		{ID: "p1", PlanDate: date, ContentType: constants.ContentBook, ContentID: "algebra"},
		{ID: "p2", PlanDate: date, BlockIndex: 1, ContentType: constants.ContentLecture, ContentID: "bio"},
	}
	if err := store.SavePlans(date, plans); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	// Soft delete the date's plans
	if err := store.DeletePlans(date); err != nil {
		t.Fatalf("DeletePlans failed: %v", err)
	}

	// Deleted plans are invisible to reads
	loaded, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("deleted plans should not appear in GetPlans, got %d", len(loaded))
	}

	// Restore brings them back intact
	if err := store.RestorePlans(date); err != nil {
		t.Fatalf("RestorePlans failed: %v", err)
	}
	restored, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("expected 2 restored plans, got %d", len(restored))
	}
	if restored[0].ID != "p1" || restored[1].ID != "p2" {
		t.Errorf("restored plans out of shape: %+v", restored)
	}
}

func TestSavePlans_RejectsDeletedPlan(t *testing.T) {
	store := newTestStore(t)

	deletedAt := "2026-03-01T10:00:00Z"
	plans := []models.ScheduledPlan{
		{ID: "p1", PlanDate: "2026-03-02", ContentType: constants.ContentBook, ContentID: "a", DeletedAt: &deletedAt},
	}
	err := store.SavePlans("2026-03-02", plans)
	if err == nil {
		t.Fatal("expected SavePlans to reject a plan with deleted_at set")
	}
	if !strings.Contains(err.Error(), "deleted_at") {
		t.Errorf("error should name the deleted_at field: %v", err)
	}
}

func TestSavePlans_PreservesSoftDeletedRows(t *testing.T) {
	store := newTestStore(t)
	date := "2026-03-02"

	original := []models.ScheduledPlan{{ID: "old", PlanDate: date, ContentType: constants.ContentBook, ContentID: "a"}}
	if err := store.SavePlans(date, original); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}
	if err := store.DeletePlans(date); err != nil {
		t.Fatalf("DeletePlans failed: %v", err)
	}

	// A new generation replaces only live rows.
	replacement := []models.ScheduledPlan{{ID: "new", PlanDate: date, ContentType: constants.ContentBook, ContentID: "b"}}
	if err := store.SavePlans(date, replacement); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	loaded, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "new" {
		t.Fatalf("expected only the replacement plan live, got %+v", loaded)
	}

	// The soft-deleted row survived the replacement and can come back.
	if err := store.RestorePlans(date); err != nil {
		t.Fatalf("RestorePlans failed: %v", err)
	}
	all, err := store.GetPlans(date)
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected the old plan back alongside the new one, got %d", len(all))
	}
}

func TestDeletePlans_OtherDatesUntouched(t *testing.T) {
	store := newTestStore(t)

	if err := store.SavePlans("2026-03-02", []models.ScheduledPlan{{ID: "d1", PlanDate: "2026-03-02", ContentType: constants.ContentBook, ContentID: "a"}}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}
	if err := store.SavePlans("2026-03-03", []models.ScheduledPlan{{ID: "d2", PlanDate: "2026-03-03", ContentType: constants.ContentBook, ContentID: "b"}}); err != nil {
		t.Fatalf("SavePlans failed: %v", err)
	}

	if err := store.DeletePlans("2026-03-02"); err != nil {
		t.Fatalf("DeletePlans failed: %v", err)
	}

	other, err := store.GetPlans("2026-03-03")
	if err != nil {
		t.Fatalf("GetPlans failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("deleting one date disturbed another, got %d plans", len(other))
	}
}
