package models

import "github.com/studyflowhq/studyflow/internal/constants"

// ScheduledPlan is the persisted unit behind a plan-type timeline item. Start
// and end times are optional: a plan without them is skipped by every
// time-based algorithm (it exists on the day but has not been placed yet).
type ScheduledPlan struct {
	ID               string                `json:"id"`
	PlanDate         string                `json:"plan_date"` // YYYY-MM-DD format
	BlockIndex       int                   `json:"block_index"`
	ContentType      constants.ContentType `json:"content_type"`
	ContentID        string                `json:"content_id"`
	Subject          string                `json:"subject,omitempty"`
	PlannedStartUnit int                   `json:"planned_start_unit,omitempty"` // page or lecture-minute
	PlannedEndUnit   int                   `json:"planned_end_unit,omitempty"`
	IsReschedulable  bool                  `json:"is_reschedulable"`
	StartTime        *string               `json:"start_time,omitempty"` // HH:MM format
	EndTime          *string               `json:"end_time,omitempty"`   // HH:MM format
	DeletedAt        *string               `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// HasTimes reports whether both start and end times are set.
func (p ScheduledPlan) HasTimes() bool {
	return p.StartTime != nil && p.EndTime != nil
}

// ExistingPlanInfo is an external, immutable commitment (academy lesson,
// meal, travel) that scheduling must route around. The engine never moves
// these; they only act as obstacles for overlap detection.
type ExistingPlanInfo struct {
	Date      string `json:"date"`       // YYYY-MM-DD format
	StartTime string `json:"start_time"` // HH:MM format
	EndTime   string `json:"end_time"`   // HH:MM format
	Source    string `json:"source,omitempty"`
}

// StudyContent is a candidate content item for day-plan generation, carrying
// the per-subject signals the priority engine scores it with.
type StudyContent struct {
	ID               string                `json:"id"`
	ContentType      constants.ContentType `json:"content_type"`
	Subject          string                `json:"subject"`
	Title            string                `json:"title"`
	DurationMin      int                   `json:"duration_min"`
	Progress         float64               `json:"progress"`   // 0-100
	Difficulty       string                `json:"difficulty"` // easy | medium | hard
	RecentGrade      *float64              `json:"recent_grade,omitempty"`      // 1 (best) - 9 (worst)
	RecentPercentile *float64              `json:"recent_percentile,omitempty"` // 0-100
	RiskIndex        float64               `json:"risk_index"`                  // 0-100
	ExamUrgency      float64               `json:"exam_urgency"`                // 0-100
	SemesterUrgency  float64               `json:"semester_urgency"`            // 0-100
	HistoryRate      *float64              `json:"history_rate,omitempty"`
}
