// Package reorder recomputes start and end times for a day slot's timeline
// after an item is moved, inserted, or resized. It bifurcates on a capacity
// test: with slack available it pushes only the items that conflict with
// the moved one (preserving the gap left behind), and with no slack it
// pulls everything back-to-back from the slot start. Pull is the universal
// fallback; push never emits a result past the slot boundary.
package reorder

import (
	"fmt"
	"sort"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// EmptySlot reports the gap a moved item left behind in push mode.
type EmptySlot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Result is the outcome of a reorder computation. Items are retimed and
// sorted ascending by start time. When Feasible is false the input did not
// fit the slot at all and Items carries the input unchanged.
type Result struct {
	Items         []models.TimelineItem `json:"items"`
	Mode          constants.ReorderMode `json:"mode"`
	EmptySlot     *EmptySlot            `json:"empty_slot,omitempty"`
	Feasible      bool                  `json:"feasible"`
	ExcessMinutes int                   `json:"excess_minutes,omitempty"`
}

// Feasibility is the outcome of a CanReorder pre-check.
type Feasibility struct {
	CanReorder    bool `json:"can_reorder"`
	ExcessMinutes int  `json:"excess_minutes,omitempty"`
}

// Advisory is a soft, non-blocking placement hint. Advisories never
// invalidate a placement; callers decide whether to surface them.
type Advisory struct {
	Severity constants.Severity `json:"severity"`
	Message  string             `json:"message"`
}

// timed pairs an item with its working interval in minutes from midnight.
type timed struct {
	item  models.TimelineItem
	start int
	end   int
}

// itemDuration returns the item's duration in minutes. DurationMinutes is
// the authority; start/end are only consulted when it is unset.
func itemDuration(item models.TimelineItem) int {
	if item.DurationMinutes > 0 {
		return item.DurationMinutes
	}
	d, err := timeutil.DurationMinutes(item.StartTime, item.EndTime)
	if err != nil {
		return 0
	}
	return d
}

// nonEmpty filters out empty placeholder items, preserving order.
func nonEmpty(items []models.TimelineItem) []models.TimelineItem {
	kept := make([]models.TimelineItem, 0, len(items))
	for _, item := range items {
		if !item.IsEmpty() {
			kept = append(kept, item)
		}
	}
	return kept
}

func slotBounds(slot models.TimeSlotBoundary) (start, end int, err error) {
	start, err = timeutil.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot start: %w", err)
	}
	end, err = timeutil.ParseTimeToMinutes(slot.End)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot end: %w", err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("slot end %s is not after slot start %s", slot.End, slot.Start)
	}
	return start, end, nil
}

// CanReorder checks whether the non-empty items fit the slot at all. When
// they do not, ExcessMinutes reports how far over capacity they run.
func CanReorder(items []models.TimelineItem, slot models.TimeSlotBoundary) Feasibility {
	capacity, err := slot.CapacityMinutes()
	if err != nil {
		return Feasibility{CanReorder: false}
	}

	total := 0
	for _, item := range nonEmpty(items) {
		total += itemDuration(item)
	}
	if total > capacity {
		return Feasibility{CanReorder: false, ExcessMinutes: total - capacity}
	}
	return Feasibility{CanReorder: true}
}

// PredictReorderMode runs the push/pull capacity comparison without
// performing the reorder, for cheap UI feedback. Plan durations compete for
// whatever capacity the fixed non-study blocks leave over; push is chosen
// when they fit.
func PredictReorderMode(items []models.TimelineItem, slot models.TimeSlotBoundary) constants.ReorderMode {
	capacity, err := slot.CapacityMinutes()
	if err != nil {
		return constants.ModePull
	}

	planRequired := 0
	nonStudyRequired := 0
	for _, item := range items {
		switch {
		case item.IsPlan():
			planRequired += itemDuration(item)
		case item.IsNonStudy():
			nonStudyRequired += itemDuration(item)
		}
	}

	if planRequired <= capacity-nonStudyRequired {
		return constants.ModePush
	}
	return constants.ModePull
}

// MoveItemToIndex splices the identified item to a new position without
// recomputing any times. It produces the post-drag ordering that
// CalculateUnifiedReorder consumes. The index is clamped to the list.
func MoveItemToIndex(items []models.TimelineItem, id string, newIndex int) ([]models.TimelineItem, error) {
	fromIndex := -1
	for i, item := range items {
		if item.ID == id {
			fromIndex = i
			break
		}
	}
	if fromIndex < 0 {
		return nil, fmt.Errorf("item %q not found", id)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(items)-1 {
		newIndex = len(items) - 1
	}

	moved := items[fromIndex]
	spliced := make([]models.TimelineItem, 0, len(items))
	spliced = append(spliced, items[:fromIndex]...)
	spliced = append(spliced, items[fromIndex+1:]...)
	spliced = append(spliced[:newIndex], append([]models.TimelineItem{moved}, spliced[newIndex:]...)...)
	return spliced, nil
}

// CalculateUnifiedReorder recomputes the timeline after the identified item
// moved. orderedItems is the post-drag ordering; originalItems carries the
// pre-drag ordering and times. Mode selection, push with pull fallback, and
// the defensive pull capacity check all live here; the caller only ever
// sees a structured result.
func CalculateUnifiedReorder(orderedItems []models.TimelineItem, slot models.TimeSlotBoundary, movedItemID string, originalItems []models.TimelineItem) (Result, error) {
	slotStart, slotEnd, err := slotBounds(slot)
	if err != nil {
		return Result{}, err
	}

	ordered := nonEmpty(orderedItems)
	original := nonEmpty(originalItems)

	movedNewIndex := indexOf(ordered, movedItemID)
	if movedNewIndex < 0 {
		return Result{}, fmt.Errorf("moved item %q not in ordered items", movedItemID)
	}
	movedOrigIndex := indexOf(original, movedItemID)
	if movedOrigIndex < 0 {
		return Result{}, fmt.Errorf("moved item %q not in original items", movedItemID)
	}

	if PredictReorderMode(ordered, slot) == constants.ModePush {
		result, ok := pushReorder(ordered, original, movedNewIndex, movedOrigIndex, slotStart, slotEnd)
		if ok {
			return result, nil
		}
		// Push would run past the slot boundary; degrade to pull.
	}

	return pullReorder(ordered, slotStart, slotEnd), nil
}

func indexOf(items []models.TimelineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// pushReorder keeps every unaffected item on its original times, moving
// only the dragged item and whatever now collides with it. Returns ok=false
// when the final sweep escapes the slot boundary, signalling the caller to
// fall back to pull.
func pushReorder(ordered, original []models.TimelineItem, movedNewIndex, movedOrigIndex, slotStart, slotEnd int) (Result, bool) {
	if movedNewIndex == movedOrigIndex {
		// Nothing moved; hand the original timeline back verbatim.
		items := make([]models.TimelineItem, len(original))
		copy(items, original)
		return Result{Items: items, Mode: constants.ModePush, Feasible: true}, true
	}

	origTimes := make(map[string]timed, len(original))
	for _, item := range original {
		start, err := timeutil.ParseTimeToMinutes(item.StartTime)
		if err != nil {
			return Result{}, false
		}
		origTimes[item.ID] = timed{item: item, start: start, end: start + itemDuration(item)}
	}

	moved := ordered[movedNewIndex]
	movedDuration := itemDuration(moved)

	// The moved item lands where its new predecessor originally ended, or
	// at the slot start when it is now first.
	movedStart := slotStart
	if movedNewIndex > 0 {
		pred, ok := origTimes[ordered[movedNewIndex-1].ID]
		if !ok {
			return Result{}, false
		}
		movedStart = pred.end
	}
	movedEnd := movedStart + movedDuration

	working := make([]timed, 0, len(ordered))
	for _, item := range ordered {
		if item.ID == moved.ID {
			working = append(working, timed{item: item, start: movedStart, end: movedEnd})
			continue
		}
		t, ok := origTimes[item.ID]
		if !ok {
			return Result{}, false
		}
		// Items the moved interval now covers are shifted to trail it;
		// everything else keeps its original times.
		if t.start < movedEnd && movedStart < t.end {
			d := itemDuration(item)
			t = timed{item: item, start: movedEnd, end: movedEnd + d}
		}
		working = append(working, t)
	}

	// One forward sweep resolves the chain reaction the shift may have
	// started further down the timeline.
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].start < working[j].start
	})
	for i := 1; i < len(working); i++ {
		if working[i].start < working[i-1].end {
			d := working[i].end - working[i].start
			working[i].start = working[i-1].end
			working[i].end = working[i].start + d
		}
	}

	if len(working) > 0 && working[len(working)-1].end > slotEnd {
		return Result{}, false
	}

	result := Result{Mode: constants.ModePush, Feasible: true}

	// The moved item's old interval becomes a reported gap unless another
	// item's new position now occupies any part of it. Gaps are not
	// auto-filled in push mode.
	origMoved := origTimes[moved.ID]
	occupied := false
	for _, t := range working {
		if t.item.ID == moved.ID {
			continue
		}
		if t.start < origMoved.end && origMoved.start < t.end {
			occupied = true
			break
		}
	}
	if !occupied {
		start, err1 := timeutil.MinutesToTimeString(origMoved.start)
		end, err2 := timeutil.MinutesToTimeString(origMoved.end)
		if err1 == nil && err2 == nil {
			result.EmptySlot = &EmptySlot{
				Start:           start,
				End:             end,
				DurationMinutes: origMoved.end - origMoved.start,
			}
		}
	}

	items, ok := materialize(working)
	if !ok {
		return Result{}, false
	}
	result.Items = items
	return result, true
}

// pullReorder packs the items back-to-back from the slot start in the given
// order. It re-checks capacity itself rather than trusting mode selection:
// the fallback path may hand it an infeasible set, and packing one past the
// boundary would silently corrupt the schedule.
func pullReorder(ordered []models.TimelineItem, slotStart, slotEnd int) Result {
	total := 0
	for _, item := range ordered {
		total += itemDuration(item)
	}
	if total > slotEnd-slotStart {
		items := make([]models.TimelineItem, len(ordered))
		copy(items, ordered)
		return Result{
			Items:         items,
			Mode:          constants.ModePull,
			Feasible:      false,
			ExcessMinutes: total - (slotEnd - slotStart),
		}
	}

	working := make([]timed, 0, len(ordered))
	cursor := slotStart
	for _, item := range ordered {
		d := itemDuration(item)
		working = append(working, timed{item: item, start: cursor, end: cursor + d})
		cursor += d
	}

	items, ok := materialize(working)
	if !ok {
		// Unreachable after the capacity check, but never emit a partial
		// timeline.
		items = make([]models.TimelineItem, len(ordered))
		copy(items, ordered)
		return Result{Items: items, Mode: constants.ModePull, Feasible: false}
	}
	return Result{Items: items, Mode: constants.ModePull, Feasible: true}
}

// materialize converts working intervals back to HH:MM items.
func materialize(working []timed) ([]models.TimelineItem, bool) {
	items := make([]models.TimelineItem, 0, len(working))
	for _, t := range working {
		start, err := timeutil.MinutesToTimeString(t.start)
		if err != nil {
			return nil, false
		}
		end, err := timeutil.MinutesToTimeString(t.end)
		if err != nil {
			return nil, false
		}
		item := t.item
		item.StartTime = start
		item.EndTime = end
		item.DurationMinutes = t.end - t.start
		items = append(items, item)
	}
	return items, true
}
