package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/reorder"
)

type PlanReorderCmd struct {
	Date    string `arg:"" help:"Date of the plan (YYYY-MM-DD or 'today')." default:"today"`
	Item    string `help:"ID of the item to move." required:""`
	ToIndex int    `help:"Target position in the timeline (0-based)." required:""`
	DryRun  bool   `help:"Print the reordered timeline without saving it."`
}

func (c *PlanReorderCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	plans, err := ctx.Store.GetPlans(date)
	if err != nil {
		return err
	}
	commitments, err := ctx.Store.GetCommitments(date)
	if err != nil {
		return err
	}

	original, err := ctx.BuildTimeline(plans, commitments, date, settings)
	if err != nil {
		return err
	}
	slot := SlotFromSettings(settings)

	feasibility := reorder.CanReorder(original, slot)
	if !feasibility.CanReorder {
		fmt.Printf("Timeline exceeds the slot by %d minutes; reorder cannot produce a valid schedule.\n",
			feasibility.ExcessMinutes)
		return nil
	}

	ordered, err := reorder.MoveItemToIndex(original, c.Item, c.ToIndex)
	if err != nil {
		return err
	}

	result, err := reorder.CalculateUnifiedReorder(ordered, slot, c.Item, original)
	if err != nil {
		return err
	}

	logger.Info("Reordered timeline", "date", date, "mode", result.Mode, "feasible", result.Feasible)

	if !result.Feasible {
		fmt.Printf("Reorder is infeasible: items exceed the slot by %d minutes.\n", result.ExcessMinutes)
		return nil
	}

	fmt.Printf("Mode: %s\n", result.Mode)
	fmt.Print(RenderTimeline(date, result.Items))
	if result.EmptySlot != nil {
		fmt.Printf("Freed slot: %s - %s (%d min)\n",
			result.EmptySlot.Start, result.EmptySlot.End, result.EmptySlot.DurationMinutes)
	}

	if c.DryRun {
		fmt.Println("\nDry run: timeline not saved.")
		return nil
	}

	updated := applyTimelineTimes(plans, result.Items)
	if err := ctx.Store.SavePlans(date, updated); err != nil {
		return err
	}
	fmt.Printf("\nSaved reordered plan for %s\n", date)
	return nil
}

// applyTimelineTimes copies the retimed plan items back onto the stored
// plans, matching by ID. Non-study and empty items have no stored plan.
func applyTimelineTimes(plans []models.ScheduledPlan, items []models.TimelineItem) []models.ScheduledPlan {
	times := make(map[string]models.TimelineItem, len(items))
	for _, item := range items {
		if item.IsPlan() {
			times[item.ID] = item
		}
	}

	updated := make([]models.ScheduledPlan, 0, len(plans))
	for _, p := range plans {
		if item, ok := times[p.ID]; ok {
			start := item.StartTime
			end := item.EndTime
			p.StartTime = &start
			p.EndTime = &end
		}
		updated = append(updated, p)
	}
	return updated
}
