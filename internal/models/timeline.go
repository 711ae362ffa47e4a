package models

import (
	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// TimelineItem is one scheduled unit inside a day's timeline: an actual study
// block, a fixed non-study commitment, or an empty placeholder for unused
// slot space. Empty items are excluded from all duration arithmetic.
type TimelineItem struct {
	ID              string                 `json:"id"`
	Type            constants.ItemType     `json:"type"`
	NonStudyType    constants.NonStudyType `json:"non_study_type,omitempty"`
	Title           string                 `json:"title,omitempty"`
	StartTime       string                 `json:"start_time"` // HH:MM format
	EndTime         string                 `json:"end_time"`   // HH:MM format
	DurationMinutes int                    `json:"duration_minutes"`
}

// IsPlan reports whether the item is a study block.
func (t TimelineItem) IsPlan() bool {
	return t.Type == constants.ItemTypePlan
}

// IsNonStudy reports whether the item is a fixed non-study commitment.
func (t TimelineItem) IsNonStudy() bool {
	return t.Type == constants.ItemTypeNonStudy
}

// IsEmpty reports whether the item is an empty placeholder.
func (t TimelineItem) IsEmpty() bool {
	return t.Type == constants.ItemTypeEmpty
}

// TimeSlotBoundary is the bounded container a timeline lives in. All derived
// start/end times must fall within [Start, End].
type TimeSlotBoundary struct {
	Start string `json:"start"` // HH:MM format
	End   string `json:"end"`   // HH:MM format
}

// CapacityMinutes returns the slot's total length in minutes. It errors on
// malformed bounds or an end that is not after the start.
func (s TimeSlotBoundary) CapacityMinutes() (int, error) {
	return timeutil.DurationMinutes(s.Start, s.End)
}
