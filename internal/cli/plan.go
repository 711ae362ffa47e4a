package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/config"
	"github.com/studyflowhq/studyflow/internal/logger"
)

type PlanGenerateCmd struct {
	Date        string `arg:"" help:"Date to plan (YYYY-MM-DD or 'today')." default:"today"`
	Contents    string `help:"YAML file with candidate study contents." required:""`
	Commitments string `help:"YAML file with fixed commitments. Omit to use stored commitments."`
	Weights     string `help:"YAML file with priority weight overrides."`
	DryRun      bool   `help:"Print the plan without saving it."`
}

func (c *PlanGenerateCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	contents, err := config.LoadContents(c.Contents)
	if err != nil {
		return err
	}

	commitments, err := ctx.Store.GetCommitments(date)
	if err != nil {
		return err
	}
	if c.Commitments != "" {
		commitments, err = config.LoadCommitments(c.Commitments)
		if err != nil {
			return err
		}
	}

	cfg, err := config.LoadWeights(c.Weights)
	if err != nil {
		return err
	}

	slot := SlotFromSettings(settings)
	plan, err := ctx.Scheduler.GeneratePlan(date, contents, commitments, cfg, slot)
	if err != nil {
		return err
	}

	logger.Info("Generated plan", "date", date, "plans", len(plan.Plans), "unplaced", len(plan.Unplaced))

	if plan.Report.HasOverlaps {
		fmt.Printf("Warning: generated plan still overlaps fixed commitments (%d minutes total)\n",
			plan.Report.TotalOverlapMinutes)
	}

	items, err := ctx.BuildTimeline(plan.Plans, commitments, date, settings)
	if err != nil {
		return err
	}
	fmt.Print(RenderTimeline(date, items))

	if len(plan.Unplaced) > 0 {
		fmt.Printf("\n%d content(s) did not fit the day:\n", len(plan.Unplaced))
		for _, u := range plan.Unplaced {
			fmt.Printf("  - %s (%s, %d min)\n", u.Title, u.Subject, u.DurationMin)
		}
	}

	if c.DryRun {
		fmt.Println("\nDry run: plan not saved.")
		return nil
	}

	if err := ctx.Store.SavePlans(date, plan.Plans); err != nil {
		return err
	}
	fmt.Printf("\nSaved %d plan(s) for %s\n", len(plan.Plans), date)
	return nil
}

type PlanClearCmd struct {
	Date string `arg:"" help:"Date to clear (YYYY-MM-DD or 'today')."`
}

func (c *PlanClearCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeletePlans(date); err != nil {
		return err
	}
	fmt.Printf("Cleared plans for %s (restore with 'plan restore %s')\n", date, date)
	return nil
}

type PlanRestoreCmd struct {
	Date string `arg:"" help:"Date to restore (YYYY-MM-DD or 'today')."`
}

func (c *PlanRestoreCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestorePlans(date); err != nil {
		return err
	}
	fmt.Printf("Restored plans for %s\n", date)
	return nil
}

type PlanShowCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *PlanShowCmd) Run(ctx *Context) error {
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

	items, err := ctx.BuildTimeline(plans, commitments, date, settings)
	if err != nil {
		return err
	}
	fmt.Print(RenderTimeline(date, items))
	return nil
}
