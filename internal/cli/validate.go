package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/overlap"
)

type ValidateCmd struct {
	Date string `arg:"" help:"Date to validate (YYYY-MM-DD or 'today')." default:"today"`
	Fix  bool   `help:"Shift conflicting plans forward past their conflicts."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
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

	external := ctx.Validator.ValidateNoOverlaps(plans, commitments)
	internal := ctx.Validator.ValidateNoInternalOverlaps(plans)

	if !external.HasOverlaps && !internal.HasOverlaps {
		fmt.Printf("No conflicts detected for %s.\n", date)
		return nil
	}

	printReport := func(title string, report overlap.Report) {
		if !report.HasOverlaps {
			return
		}
		fmt.Printf("%s (%d minutes total):\n", title, report.TotalOverlapMinutes)
		for _, o := range report.Overlaps {
			other := o.OtherSource
			if o.OtherPlanID != "" {
				other = "plan " + o.OtherPlanID
			}
			fmt.Printf("  - plan %s (%s-%s) overlaps %s (%s-%s) by %d min\n",
				o.PlanID, o.PlanStart, o.PlanEnd, other, o.OtherStart, o.OtherEnd, o.OverlapMinutes)
		}
	}
	printReport("Conflicts with fixed commitments", external)
	printReport("Conflicts between plans", internal)

	if !c.Fix {
		fmt.Println("\nRun with --fix to shift conflicting plans forward.")
		return nil
	}

	result := ctx.Validator.AdjustOverlappingTimes(plans, commitments, settings.MaxAdjustEnd)
	fmt.Printf("\nAdjusted %d plan(s).\n", result.AdjustedCount)
	for _, u := range result.Unadjustable {
		fmt.Printf("  ! plan %s could not be adjusted: %s\n", u.Plan.ID, u.Reason)
	}
	if len(result.Unadjustable) > 0 {
		fmt.Println("Unadjustable plans keep their original times; resolve them manually.")
	}

	if err := ctx.Store.SavePlans(date, result.Plans); err != nil {
		return err
	}
	fmt.Printf("Saved plan for %s\n", date)
	return nil
}
