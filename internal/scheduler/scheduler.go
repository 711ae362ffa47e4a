// Package scheduler builds the initial day plan: candidate contents are
// ranked by the priority engine, placed into the free blocks between fixed
// commitments, and the result is overlap-checked before it is handed back.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/overlap"
	"github.com/studyflowhq/studyflow/internal/priority"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// DayPlan is the outcome of one generation run. Unplaced carries the
// candidates that did not fit the day's free blocks, in priority order.
type DayPlan struct {
	Date     string                 `json:"date"` // YYYY-MM-DD format
	Plans    []models.ScheduledPlan `json:"plans"`
	Report   overlap.Report         `json:"report"`
	Unplaced []models.StudyContent  `json:"unplaced,omitempty"`
}

type Scheduler struct {
	validator *overlap.Validator
}

func New() *Scheduler {
	return &Scheduler{validator: overlap.New()}
}

type timeBlock struct {
	start int // minutes from midnight
	end   int // minutes from midnight
}

// GeneratePlan creates a day plan for the given date. Contents are scored
// and placed best-first; commitments on other dates are ignored.
func (s *Scheduler) GeneratePlan(date string, contents []models.StudyContent, commitments []models.ExistingPlanInfo, cfg priority.Config, slot models.TimeSlotBoundary) (DayPlan, error) {
	plan := DayPlan{Date: date, Plans: []models.ScheduledPlan{}}

	if !timeutil.IsValidDateFormat(date) {
		return plan, fmt.Errorf("invalid date format: %s", date)
	}

	slotStart, err := timeutil.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return plan, fmt.Errorf("invalid slot start time: %w", err)
	}
	slotEnd, err := timeutil.ParseTimeToMinutes(slot.End)
	if err != nil {
		return plan, fmt.Errorf("invalid slot end time: %w", err)
	}
	if slotEnd <= slotStart {
		return plan, fmt.Errorf("slot end %s is not after slot start %s", slot.End, slot.Start)
	}

	// Fixed commitments on this date carve the slot into free blocks.
	var fixed []models.ExistingPlanInfo
	for _, commit := range commitments {
		if commit.Date == date {
			fixed = append(fixed, commit)
		}
	}
	sort.Slice(fixed, func(i, j int) bool {
		return fixed[i].StartTime < fixed[j].StartTime
	})

	freeBlocks := findFreeBlocks(slotStart, slotEnd, fixed)

	ranked := priority.Rank(contents, cfg)

	blockIndex := 0
	for _, candidate := range ranked {
		content := candidate.Content
		if content.DurationMin <= 0 {
			plan.Unplaced = append(plan.Unplaced, content)
			continue
		}

		placed := false
		for i := 0; i < len(freeBlocks); i++ {
			block := freeBlocks[i]
			if content.DurationMin > block.end-block.start {
				continue
			}

			startStr, err := timeutil.MinutesToTimeString(block.start)
			if err != nil {
				continue
			}
			endStr, err := timeutil.MinutesToTimeString(block.start + content.DurationMin)
			if err != nil {
				continue
			}

			plan.Plans = append(plan.Plans, models.ScheduledPlan{
				ID:              uuid.NewString(),
				PlanDate:        date,
				BlockIndex:      blockIndex,
				ContentType:     content.ContentType,
				ContentID:       content.ID,
				Subject:         content.Subject,
				IsReschedulable: true,
				StartTime:       &startStr,
				EndTime:         &endStr,
			})
			blockIndex++

			// Shrink the block; a fully consumed block is removed.
			remaining := timeBlock{start: block.start + content.DurationMin, end: block.end}
			if remaining.start < remaining.end {
				freeBlocks[i] = remaining
			} else {
				freeBlocks = append(freeBlocks[:i], freeBlocks[i+1:]...)
			}
			placed = true
			break
		}

		if !placed {
			plan.Unplaced = append(plan.Unplaced, content)
		}
	}

	// Final check against the fixed commitments before the caller persists.
	plan.Report = s.validator.ValidateNoOverlaps(plan.Plans, fixed)
	return plan, nil
}

func findFreeBlocks(slotStart, slotEnd int, fixed []models.ExistingPlanInfo) []timeBlock {
	var blocks []timeBlock

	currentStart := slotStart
	for _, commit := range fixed {
		commitStart, err := timeutil.ParseTimeToMinutes(commit.StartTime)
		if err != nil {
			continue
		}
		commitEnd, err := timeutil.ParseTimeToMinutes(commit.EndTime)
		if err != nil {
			continue
		}

		if currentStart < commitStart {
			blocks = append(blocks, timeBlock{start: currentStart, end: commitStart})
		}
		if commitEnd > currentStart {
			currentStart = commitEnd
		}
	}

	if currentStart < slotEnd {
		blocks = append(blocks, timeBlock{start: currentStart, end: slotEnd})
	}

	return blocks
}

// BuildTimeline merges a day's scheduled plans and fixed commitments into a
// single ordered timeline, filling the gaps with empty placeholder items.
// Plans without times are left out; they have no position on a timeline.
func BuildTimeline(plans []models.ScheduledPlan, commitments []models.ExistingPlanInfo, date string, slot models.TimeSlotBoundary) ([]models.TimelineItem, error) {
	slotStart, err := timeutil.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid slot start time: %w", err)
	}
	slotEnd, err := timeutil.ParseTimeToMinutes(slot.End)
	if err != nil {
		return nil, fmt.Errorf("invalid slot end time: %w", err)
	}

	var items []models.TimelineItem

	for _, p := range plans {
		if p.PlanDate != date || !p.HasTimes() {
			continue
		}
		d, err := timeutil.DurationMinutes(*p.StartTime, *p.EndTime)
		if err != nil {
			continue
		}
		title := p.Subject
		if title == "" {
			title = p.ContentID
		}
		items = append(items, models.TimelineItem{
			ID:              p.ID,
			Type:            constants.ItemTypePlan,
			Title:           title,
			StartTime:       *p.StartTime,
			EndTime:         *p.EndTime,
			DurationMinutes: d,
		})
	}

	for _, c := range commitments {
		if c.Date != date {
			continue
		}
		d, err := timeutil.DurationMinutes(c.StartTime, c.EndTime)
		if err != nil {
			continue
		}
		items = append(items, models.TimelineItem{
			ID:              uuid.NewString(),
			Type:            constants.ItemTypeNonStudy,
			NonStudyType:    constants.NonStudyOther,
			Title:           c.Source,
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			DurationMinutes: d,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})

	// Fill unused slot space with empty placeholders so the timeline spans
	// the whole window. Empty items never enter duration arithmetic.
	filled := make([]models.TimelineItem, 0, len(items)*2)
	cursor := slotStart
	for _, item := range items {
		start, err := timeutil.ParseTimeToMinutes(item.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseTimeToMinutes(item.EndTime)
		if err != nil {
			continue
		}
		if cursor < start {
			if gap, ok := emptyItem(cursor, start); ok {
				filled = append(filled, gap)
			}
		}
		filled = append(filled, item)
		if end > cursor {
			cursor = end
		}
	}
	if cursor < slotEnd {
		if gap, ok := emptyItem(cursor, slotEnd); ok {
			filled = append(filled, gap)
		}
	}

	return filled, nil
}

func emptyItem(start, end int) (models.TimelineItem, bool) {
	startStr, err := timeutil.MinutesToTimeString(start)
	if err != nil {
		return models.TimelineItem{}, false
	}
	endStr, err := timeutil.MinutesToTimeString(end)
	if err != nil {
		return models.TimelineItem{}, false
	}
	return models.TimelineItem{
		ID:              uuid.NewString(),
		Type:            constants.ItemTypeEmpty,
		StartTime:       startStr,
		EndTime:         endStr,
		DurationMinutes: 0,
	}, true
}
