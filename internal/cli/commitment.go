package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/reorder"
	"github.com/studyflowhq/studyflow/internal/timeutil"
)

type CommitmentAddCmd struct {
	Date   string `arg:"" help:"Date of the commitment (YYYY-MM-DD or 'today')."`
	Start  string `arg:"" help:"Start time (HH:MM)."`
	End    string `arg:"" help:"End time (HH:MM)."`
	Source string `help:"Label for the commitment (e.g. 'math academy')." default:""`
	Type   string `help:"Commitment type (meal, academy, travel, exercise, other)." default:"other"`
}

func (c *CommitmentAddCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}
	if _, err := timeutil.DurationMinutes(c.Start, c.End); err != nil {
		return err
	}

	// Advisory only: an unusual placement is reported but still saved.
	advisories := reorder.ValidateNonStudyTimeConstraints(constants.NonStudyType(c.Type), c.Start, c.End)
	if len(advisories) > 0 {
		fmt.Print(RenderAdvisories(advisories))
	}

	err = ctx.Store.AddCommitment(models.ExistingPlanInfo{
		Date:      date,
		StartTime: c.Start,
		EndTime:   c.End,
		Source:    c.Source,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added commitment %s - %s on %s\n", c.Start, c.End, date)
	return nil
}

type CommitmentListCmd struct {
	Date string `arg:"" help:"Date to list (YYYY-MM-DD, 'today', or 'all')." default:"today"`
}

func (c *CommitmentListCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var commitments []models.ExistingPlanInfo
	if c.Date == "all" {
		commitments, err = ctx.Store.GetAllCommitments()
	} else {
		var date string
		date, err = ResolveDate(c.Date, settings)
		if err != nil {
			return err
		}
		commitments, err = ctx.Store.GetCommitments(date)
	}
	if err != nil {
		return err
	}

	if len(commitments) == 0 {
		fmt.Println("No commitments found.")
		return nil
	}
	for _, commit := range commitments {
		label := commit.Source
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Printf("  %s  %s - %s  %s\n", commit.Date, commit.StartTime, commit.EndTime, label)
	}
	return nil
}

type CommitmentClearCmd struct {
	Date string `arg:"" help:"Date to clear (YYYY-MM-DD or 'today')."`
}

func (c *CommitmentClearCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}
	if err := ctx.Store.ClearCommitments(date); err != nil {
		return err
	}
	fmt.Printf("Cleared commitments for %s\n", date)
	return nil
}
