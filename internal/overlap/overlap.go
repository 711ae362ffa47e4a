// Package overlap detects and resolves time conflicts between newly
// scheduled plan blocks and a student's fixed commitments. Everything here
// is pure: inputs are snapshots, outputs are fresh values, and infeasibility
// is reported as data rather than raised as an error.
package overlap

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

// Overlap records one detected collision between a new plan block and
// either a fixed commitment or another new plan block.
type Overlap struct {
	Date           string `json:"date"` // YYYY-MM-DD format
	PlanID         string `json:"plan_id"`
	PlanStart      string `json:"plan_start"`
	PlanEnd        string `json:"plan_end"`
	OtherPlanID    string `json:"other_plan_id,omitempty"` // set for plan-vs-plan collisions
	OtherSource    string `json:"other_source,omitempty"`  // set for plan-vs-commitment collisions
	OtherStart     string `json:"other_start"`
	OtherEnd       string `json:"other_end"`
	OverlapMinutes int    `json:"overlap_minutes"`
}

// Report aggregates all collisions found in one validation pass.
type Report struct {
	HasOverlaps         bool      `json:"has_overlaps"`
	Overlaps            []Overlap `json:"overlaps"`
	TotalOverlapMinutes int       `json:"total_overlap_minutes"`
}

// UnadjustablePlan is a plan whose conflict could not be resolved within the
// allowed time window. Its original times are preserved so the caller can
// surface it for manual resolution.
type UnadjustablePlan struct {
	Plan   models.ScheduledPlan `json:"plan"`
	Reason string               `json:"reason"`
}

// AdjustResult is the outcome of AdjustOverlappingTimes: the full plan list
// with resolvable conflicts shifted forward, plus the subset that could not
// be placed.
type AdjustResult struct {
	Plans         []models.ScheduledPlan `json:"plans"`
	AdjustedCount int                    `json:"adjusted_count"`
	Unadjustable  []UnadjustablePlan     `json:"unadjustable"`
}

// Validator checks plan placements for time conflicts.
type Validator struct{}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// overlapMinutes returns the intersection length of two intervals in
// minutes. Touching intervals (end1 == start2) do not overlap.
func overlapMinutes(start1, end1, start2, end2 int) int {
	lo := start1
	if start2 > lo {
		lo = start2
	}
	hi := end1
	if end2 < hi {
		hi = end2
	}
	if hi > lo {
		return hi - lo
	}
	return 0
}

// planInterval extracts a plan's interval in minutes from midnight. Plans
// without times, or with times that do not parse, are excluded from
// validation entirely rather than reported as conflicts.
func planInterval(p models.ScheduledPlan) (start, end int, ok bool) {
	if !p.HasTimes() {
		return 0, 0, false
	}
	start, err := timeutil.ParseTimeToMinutes(*p.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = timeutil.ParseTimeToMinutes(*p.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// conflictsWithCommitment reports whether the interval collides with any
// same-date commitment. Unparseable commitment times are skipped, matching
// the validation scans.
func conflictsWithCommitment(start, end int, date string, existing []models.ExistingPlanInfo) bool {
	for _, commit := range existing {
		if commit.Date != date {
			continue
		}
		commitStart, err := timeutil.ParseTimeToMinutes(commit.StartTime)
		if err != nil {
			continue
		}
		commitEnd, err := timeutil.ParseTimeToMinutes(commit.EndTime)
		if err != nil {
			continue
		}
		if overlapMinutes(start, end, commitStart, commitEnd) > 0 {
			return true
		}
	}
	return false
}

// ValidateNoOverlaps checks every timed new plan against every fixed
// commitment on the same date. Dates are compared by string equality; the
// same clock times on different dates never collide. Complexity is O(n*m)
// per date, which is fine for a single day's schedule.
func (v *Validator) ValidateNoOverlaps(newPlans []models.ScheduledPlan, existing []models.ExistingPlanInfo) Report {
	report := Report{Overlaps: []Overlap{}}

	for _, plan := range newPlans {
		planStart, planEnd, ok := planInterval(plan)
		if !ok {
			continue
		}
		for _, commit := range existing {
			if commit.Date != plan.PlanDate {
				continue
			}
			commitStart, err := timeutil.ParseTimeToMinutes(commit.StartTime)
			if err != nil {
				continue
			}
			commitEnd, err := timeutil.ParseTimeToMinutes(commit.EndTime)
			if err != nil {
				continue
			}
			minutes := overlapMinutes(planStart, planEnd, commitStart, commitEnd)
			if minutes > 0 {
				report.Overlaps = append(report.Overlaps, Overlap{
					Date:           plan.PlanDate,
					PlanID:         plan.ID,
					PlanStart:      *plan.StartTime,
					PlanEnd:        *plan.EndTime,
					OtherSource:    commit.Source,
					OtherStart:     commit.StartTime,
					OtherEnd:       commit.EndTime,
					OverlapMinutes: minutes,
				})
				report.TotalOverlapMinutes += minutes
			}
		}
	}

	report.HasOverlaps = len(report.Overlaps) > 0
	return report
}

// ValidateNoInternalOverlaps checks the new plans pairwise against each
// other, with the same date-matching and skip rules as ValidateNoOverlaps.
func (v *Validator) ValidateNoInternalOverlaps(plans []models.ScheduledPlan) Report {
	report := Report{Overlaps: []Overlap{}}

	for i := 0; i < len(plans); i++ {
		startI, endI, ok := planInterval(plans[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(plans); j++ {
			if plans[j].PlanDate != plans[i].PlanDate {
				continue
			}
			startJ, endJ, ok := planInterval(plans[j])
			if !ok {
				continue
			}
			minutes := overlapMinutes(startI, endI, startJ, endJ)
			if minutes > 0 {
				report.Overlaps = append(report.Overlaps, Overlap{
					Date:           plans[i].PlanDate,
					PlanID:         plans[i].ID,
					PlanStart:      *plans[i].StartTime,
					PlanEnd:        *plans[i].EndTime,
					OtherPlanID:    plans[j].ID,
					OtherStart:     *plans[j].StartTime,
					OtherEnd:       *plans[j].EndTime,
					OverlapMinutes: minutes,
				})
				report.TotalOverlapMinutes += minutes
			}
		}
	}

	report.HasOverlaps = len(report.Overlaps) > 0
	return report
}

// AdjustOverlappingTimes shifts each conflicting new plan forward past the
// fixed commitments it collides with, preserving its duration. After every
// shift the plan is re-checked against all commitments, so a plan landing
// on a second commitment keeps moving until it clears them all. A plan
// whose resolved end would pass maxEndTime is reported as unadjustable with
// its original times intact. Plans without times pass through unchanged, as
// do plans with IsReschedulable false: a conflicting one is reported as
// unadjustable instead of being moved.
//
// This never fails; callers must check Unadjustable before persisting.
func (v *Validator) AdjustOverlappingTimes(newPlans []models.ScheduledPlan, existing []models.ExistingPlanInfo, maxEndTime string) AdjustResult {
	result := AdjustResult{
		Plans:        make([]models.ScheduledPlan, 0, len(newPlans)),
		Unadjustable: []UnadjustablePlan{},
	}

	maxEnd, err := timeutil.ParseTimeToMinutes(maxEndTime)
	if err != nil {
		maxEnd = 23*60 + 59
	}

	for _, plan := range newPlans {
		start, end, ok := planInterval(plan)
		if !ok {
			result.Plans = append(result.Plans, plan)
			continue
		}
		duration := end - start

		if !plan.IsReschedulable {
			result.Plans = append(result.Plans, plan)
			if conflictsWithCommitment(start, end, plan.PlanDate, existing) {
				result.Unadjustable = append(result.Unadjustable, UnadjustablePlan{
					Plan:   plan,
					Reason: "plan is not reschedulable; resolve the conflict manually",
				})
			}
			continue
		}

		// Re-scan after every shift: clearing one commitment can land the
		// plan on the next, and the plan must settle after the latest of
		// the chain. Bounded by the commitment count since each shift
		// clears at least one commitment for good.
		shifted := false
		for iter := 0; iter <= len(existing); iter++ {
			latestEnd := -1
			for _, commit := range existing {
				if commit.Date != plan.PlanDate {
					continue
				}
				commitStart, err := timeutil.ParseTimeToMinutes(commit.StartTime)
				if err != nil {
					continue
				}
				commitEnd, err := timeutil.ParseTimeToMinutes(commit.EndTime)
				if err != nil {
					continue
				}
				if overlapMinutes(start, start+duration, commitStart, commitEnd) > 0 && commitEnd > latestEnd {
					latestEnd = commitEnd
				}
			}
			if latestEnd < 0 {
				break
			}
			start = latestEnd
			shifted = true
		}

		if !shifted {
			result.Plans = append(result.Plans, plan)
			continue
		}

		if start+duration > maxEnd {
			result.Plans = append(result.Plans, plan)
			result.Unadjustable = append(result.Unadjustable, UnadjustablePlan{
				Plan: plan,
				Reason: fmt.Sprintf("adjusted end time would exceed the maximum allowed time %s (needed %d minutes from %s)",
					maxEndTime, duration, *plan.StartTime),
			})
			continue
		}

		newStart, err := timeutil.MinutesToTimeString(start)
		if err != nil {
			result.Plans = append(result.Plans, plan)
			result.Unadjustable = append(result.Unadjustable, UnadjustablePlan{
				Plan:   plan,
				Reason: fmt.Sprintf("adjusted start time would exceed the maximum allowed time %s", maxEndTime),
			})
			continue
		}
		newEnd, err := timeutil.MinutesToTimeString(start + duration)
		if err != nil {
			result.Plans = append(result.Plans, plan)
			result.Unadjustable = append(result.Unadjustable, UnadjustablePlan{
				Plan:   plan,
				Reason: fmt.Sprintf("adjusted end time would exceed the maximum allowed time %s", maxEndTime),
			})
			continue
		}

		adjusted := plan
		adjusted.StartTime = &newStart
		adjusted.EndTime = &newEnd
		result.Plans = append(result.Plans, adjusted)
		result.AdjustedCount++
	}

	return result
}
